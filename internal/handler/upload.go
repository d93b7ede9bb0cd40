package handler

import (
	"io"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"

	"github.com/kitswap/kitswap-backend/internal/imaging"
	"github.com/kitswap/kitswap-backend/internal/middleware"
	"github.com/kitswap/kitswap-backend/internal/storage"
)

// UploadHandler accepts listing photos and serves stored files back.
type UploadHandler struct {
	Files *storage.Store
}

func NewUploadHandler(files *storage.Store) *UploadHandler {
	return &UploadHandler{Files: files}
}

type uploadedFile struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// UploadImages ingests one or more listing photos from the multipart field
// "images". Each photo is sniffed, decoded, downscaled and re-encoded as
// JPEG before it touches disk; a single bad file fails the whole request.
func (h *UploadHandler) UploadImages(c echo.Context) error {
	if _, ok := middleware.PrincipalEmail(c); !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "multipart form required"})
	}
	files := form.File["images"]
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no images provided"})
	}

	out := make([]uploadedFile, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not read file"})
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not read file"})
		}

		res, err := imaging.ProcessPhoto(data)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": fh.Filename + ": " + err.Error()})
		}
		url, err := h.Files.Save(res.Data, "photo.jpg", storage.SubdirItems)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save file"})
		}
		out = append(out, uploadedFile{URL: url, Filename: path.Base(url)})
	}
	return c.JSON(http.StatusOK, echo.Map{"files": out})
}

// Serve streams a stored file back to the client. The store refuses any
// path that escapes its root.
func (h *UploadHandler) Serve(c echo.Context) error {
	data, contentType, err := h.Files.Read(c.Param("type"), c.Param("filename"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "file not found"})
	}
	return c.Blob(http.StatusOK, contentType, data)
}
