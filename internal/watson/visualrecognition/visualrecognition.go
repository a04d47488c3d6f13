// Package visualrecognition is a client for the face detection endpoint of
// the visual recognition service.
package visualrecognition

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/phildougherty/watsonassist/internal/watson"
)

// VersionDate20160520 is the API version date sent with every request
const VersionDate20160520 = "2016-05-20"

// maxImageSize is the largest image the service accepts
const maxImageSize = 2 << 20

// FaceAge is the estimated age range of a face
type FaceAge struct {
	Min   int     `json:"min"`
	Max   int     `json:"max"`
	Score float64 `json:"score"`
}

// FaceGender is the estimated gender of a face
type FaceGender struct {
	Gender string  `json:"gender"`
	Score  float64 `json:"score"`
}

// FaceLocation is the bounding box of a face in pixels
type FaceLocation struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Left   int `json:"left"`
	Top    int `json:"top"`
}

// Face is one detected face
type Face struct {
	Age      *FaceAge      `json:"age,omitempty"`
	Gender   *FaceGender   `json:"gender,omitempty"`
	Location *FaceLocation `json:"face_location,omitempty"`
}

// ImageWithFaces holds the faces found in one image
type ImageWithFaces struct {
	Image       string `json:"image,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`
	ResolvedURL string `json:"resolved_url,omitempty"`
	Faces       []Face `json:"faces"`
}

// DetectedFaces is the response of POST /v3/detect_faces
type DetectedFaces struct {
	Images          []ImageWithFaces `json:"images"`
	ImagesProcessed int              `json:"images_processed"`
}

// FirstFace returns the first face of the first image, or nil when none was found
func (d *DetectedFaces) FirstFace() *Face {
	if d == nil || len(d.Images) == 0 || len(d.Images[0].Faces) == 0 {
		return nil
	}
	return &d.Images[0].Faces[0]
}

// DetectFacesOptions selects the image to analyze. ImagesFile takes precedence over URL.
type DetectFacesOptions struct {
	ImagesFile string
	URL        string
}

// Service detects faces
type Service struct {
	client *watson.Client
}

// New creates a face detection service
func New(client *watson.Client) *Service {
	return &Service{client: client}
}

// DetectFaces uploads the image and returns the faces found in it
func (s *Service) DetectFaces(ctx context.Context, opts DetectFacesOptions) (*DetectedFaces, error) {
	query := url.Values{"version": {VersionDate20160520}}

	var (
		req *http.Request
		err error
	)
	switch {
	case opts.ImagesFile != "":
		body, contentType, berr := multipartImage(opts.ImagesFile)
		if berr != nil {
			return nil, berr
		}
		req, err = s.client.NewRequest(ctx, http.MethodPost, "/v3/detect_faces", query, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
	case opts.URL != "":
		query.Set("url", opts.URL)
		req, err = s.client.NewRequest(ctx, http.MethodGet, "/v3/detect_faces", query, nil)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("an image file or URL is required")
	}

	var result DetectedFaces
	if err := s.client.DoJSON(req, &result); err != nil {
		return nil, err
	}

	faces := 0
	for _, img := range result.Images {
		faces += len(img.Faces)
	}
	s.client.Logger().Info("Faces detected", "images", result.ImagesProcessed, "faces", faces)
	return &result, nil
}

// multipartImage encodes path as the images_file form field
func multipartImage(path string) (io.Reader, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("image %s is empty", path)
	}
	if len(data) > maxImageSize {
		return nil, "", fmt.Errorf("image %s is %d bytes, larger than the %d byte limit", path, len(data), maxImageSize)
	}

	mtype := mimetype.Detect(data)
	if !mtype.Is("image/jpeg") && !mtype.Is("image/png") && !mtype.Is("image/gif") && !mtype.Is("application/zip") {
		return nil, "", fmt.Errorf("unsupported image type %s", mtype.String())
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images_file"; filename=%q`, filepath.Base(path)))
	h.Set("Content-Type", mtype.String())
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create multipart field: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("failed to write multipart field: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
