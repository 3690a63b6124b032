// Package media integrates the Cloudinary object store that holds product
// images. Uploads and deletes are addressed by public id; deletes accept the
// stored delivery URL and derive the public id from it.
package media

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const uploadFolder = "products"

type UploadResult struct {
	PublicID string
	URL      string
}

// Store is what the catalog needs from the image backend. *Cloudinary is the
// real implementation; tests substitute a fake.
type Store interface {
	Upload(ctx context.Context, data []byte, filename string) (*UploadResult, error)
	Delete(ctx context.Context, imageURL string) error
	TransformURL(publicID string, opts TransformOptions) (string, error)
}

type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cloudName, apiKey, apiSecret string, signURLs bool) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	cld.Config.URL.Secure = true
	cld.Config.URL.SignURL = signURLs
	return &Cloudinary{cld: cld}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, data []byte, filename string) (*UploadResult, error) {
	params := uploader.UploadParams{
		Folder:       uploadFolder,
		ResourceType: "auto",
		Overwrite:    api.Bool(false),
	}
	if filename == "" {
		params.PublicID = uuid.NewString()
	}
	res, err := c.cld.Upload.Upload(ctx, bytes.NewReader(data), params)
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	return &UploadResult{PublicID: res.PublicID, URL: res.SecureURL}, nil
}

// Delete destroys the asset behind a delivery URL. URLs that do not point at
// Cloudinary are skipped without error: the row they came from is the source
// of truth, not the asset.
func (c *Cloudinary) Delete(ctx context.Context, imageURL string) error {
	publicID, ok := PublicIDFromURL(imageURL)
	if !ok {
		return nil
	}
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy %s: %w", publicID, err)
	}
	if res.Result != "ok" {
		return fmt.Errorf("cloudinary destroy %s: %s", publicID, res.Result)
	}
	return nil
}

func (c *Cloudinary) TransformURL(publicID string, opts TransformOptions) (string, error) {
	img, err := c.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("cloudinary url %s: %w", publicID, err)
	}
	img.Transformation = opts.Transformation()
	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("cloudinary url %s: %w", publicID, err)
	}
	return url, nil
}

// Matches .../upload/v12345/products/abc.jpg and captures products/abc.
var publicIDRe = regexp.MustCompile(`/upload/(?:v\d+/)?(.+?)\.(?:jpg|jpeg|png|gif|webp)`)

// PublicIDFromURL extracts the public id from a Cloudinary delivery URL.
func PublicIDFromURL(imageURL string) (string, bool) {
	if imageURL == "" || !strings.Contains(imageURL, "cloudinary.com") {
		return "", false
	}
	m := publicIDRe.FindStringSubmatch(imageURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}
