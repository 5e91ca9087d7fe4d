package route

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/campdir/campdir/rest/data"
	restmodel "github.com/campdir/campdir/rest/model"
	"github.com/evergreen-ci/gimlet"
	"github.com/pkg/errors"
)

////////////////////////////////////////////////////////////////////////
//
// PUT /bootcamps/{bootcamp_id}/photo

type bootcampPhotoHandler struct {
	bootcampID string
	extension  string
	photo      []byte

	uploadPath string
	maxBytes   int64
}

func makeUploadBootcampPhoto(uploadPath string, maxBytes int64) gimlet.RouteHandler {
	return &bootcampPhotoHandler{uploadPath: uploadPath, maxBytes: maxBytes}
}

func (h *bootcampPhotoHandler) Factory() gimlet.RouteHandler {
	return &bootcampPhotoHandler{uploadPath: h.uploadPath, maxBytes: h.maxBytes}
}

// Parse validates the upload completely before Run writes anything: a
// rejected photo must leave no trace in the bucket or the document.
func (h *bootcampPhotoHandler) Parse(ctx context.Context, r *http.Request) error {
	h.bootcampID = gimlet.GetVars(r)["bootcamp_id"]

	file, header, err := r.FormFile("file")
	if err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "must upload a file",
		}
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Errorf("photo must be at most %d bytes", h.maxBytes).Error(),
		}
	}
	if !isImage(header) {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "uploaded file must be an image",
		}
	}

	photo, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrap(err, "reading uploaded photo").Error(),
		}
	}
	if int64(len(photo)) > h.maxBytes {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Errorf("photo must be at most %d bytes", h.maxBytes).Error(),
		}
	}

	h.photo = photo
	h.extension = filepath.Ext(header.Filename)
	return nil
}

func (h *bootcampPhotoHandler) Run(ctx context.Context) gimlet.Responder {
	usr := MustHaveUser(ctx)

	b, err := data.FindBootcampById(ctx, h.bootcampID)
	if err != nil {
		return makeErrorResponder(err)
	}
	if !usr.CanModify(b.OwnerId) {
		return makeErrorResponder(gimlet.ErrorResponse{
			StatusCode: http.StatusForbidden,
			Message:    "user may not modify this bootcamp",
		})
	}

	filename, err := data.UploadBootcampPhoto(ctx, h.uploadPath, b.Id, h.extension, bytes.NewReader(h.photo))
	if err != nil {
		return makeErrorResponder(err)
	}
	return gimlet.NewJSONResponse(restmodel.NewDataResponse(filename))
}

// isImage checks the declared content type of the uploaded part.
func isImage(header *multipart.FileHeader) bool {
	return strings.HasPrefix(header.Header.Get("Content-Type"), "image/")
}
