package client

import (
	"context"
	"io"
	"net/url"
)

// uploadResult is the upload response body.
type uploadResult struct {
	URL string `json:"url"`
}

// ImagesService uploads media through the backend's media endpoints.
type ImagesService struct {
	c *Client
}

// Images returns the media upload service.
func (c *Client) Images() *ImagesService { return &ImagesService{c: c} }

// UploadImage uploads an image and returns its public URL. folder, when
// non-empty, selects the destination folder on the media store.
func (s *ImagesService) UploadImage(ctx context.Context, filename string, file io.Reader, folder string) (string, error) {
	return s.upload(ctx, "/images/upload", filename, file, folder)
}

// UploadPDF uploads a PDF document and returns its public URL.
func (s *ImagesService) UploadPDF(ctx context.Context, filename string, file io.Reader, folder string) (string, error) {
	return s.upload(ctx, "/images/upload-pdf", filename, file, folder)
}

func (s *ImagesService) upload(ctx context.Context, path, filename string, file io.Reader, folder string) (string, error) {
	opts := reqOpts{}
	if folder != "" {
		opts.query = url.Values{"folder": []string{folder}}
	}
	var out uploadResult
	if err := s.c.doMultipart(ctx, path, filename, file, &out, opts); err != nil {
		return "", err
	}
	return out.URL, nil
}
