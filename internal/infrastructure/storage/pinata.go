package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

const pinFilePath = "/pinning/pinFileToIPFS"

type PinataConfig struct {
	APIURL      string
	JWT         string
	GatewayHost string
}

// PinataUploader pins files to IPFS through the Pinata HTTP API.
type PinataUploader struct {
	cfg    PinataConfig
	client *http.Client
}

// NewPinataUploader returns an uploader using client, or http.DefaultClient
// when client is nil.
func NewPinataUploader(cfg PinataConfig, client *http.Client) *PinataUploader {
	if client == nil {
		client = http.DefaultClient
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	return &PinataUploader{cfg: cfg, client: client}
}

type pinResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

func (u *PinataUploader) Upload(ctx context.Context, data []byte, name string) (res *ports.UploadResult, err error) {
	defer func() { observe(backendPinata, err) }()

	body, contentType, err := pinForm(data, name)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.cfg.APIURL+pinFilePath, body)
	if err != nil {
		return nil, fmt.Errorf("pinata request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+u.cfg.JWT)

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pinata upload %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("pinata upload %s: status %d: %s", name, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var pin pinResponse
	if err := json.NewDecoder(resp.Body).Decode(&pin); err != nil {
		return nil, fmt.Errorf("pinata response: %w", err)
	}
	if pin.IpfsHash == "" {
		return nil, fmt.Errorf("pinata upload %s: empty hash", name)
	}

	return &ports.UploadResult{
		ContentHash: pin.IpfsHash,
		GatewayURL:  GatewayURL(u.cfg.GatewayHost, pin.IpfsHash),
	}, nil
}

// pinForm encodes the multipart body: the file itself plus pinataMetadata.
func pinForm(data []byte, name string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return nil, "", fmt.Errorf("pinata form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("pinata form: %w", err)
	}

	meta, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return nil, "", fmt.Errorf("pinata metadata: %w", err)
	}
	if err := w.WriteField("pinataMetadata", string(meta)); err != nil {
		return nil, "", fmt.Errorf("pinata form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("pinata form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
