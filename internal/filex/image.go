package filex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
)

var (
	ErrUnsupportedImage = errors.New("only JPEG and PNG images are accepted")
	ErrImageTooLarge    = errors.New("image exceeds 5 MB")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ReadImage loads a local image for upload. The type is sniffed from the
// content, not the extension.
func ReadImage(path string) (models.ImageFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.ImageFile{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	// read one byte past the limit to detect oversize files
	data, err := io.ReadAll(io.LimitReader(f, models.MaxImageBytes+1))
	if err != nil {
		return models.ImageFile{}, fmt.Errorf("read %s: %w", path, err)
	}

	img := models.ImageFile{
		Name:        filepath.Base(path),
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
	}
	if err := ValidateImage(img); err != nil {
		return models.ImageFile{}, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// ReadImages loads every path, stopping at the first failure.
func ReadImages(paths []string) ([]models.ImageFile, error) {
	out := make([]models.ImageFile, 0, len(paths))
	for _, p := range paths {
		img, err := ReadImage(p)
		if err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, nil
}

// ValidateImage checks an in-memory image against the upload rules.
func ValidateImage(img models.ImageFile) error {
	err := validate.Struct(img)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		switch fe.Field() {
		case "ContentType":
			return fmt.Errorf("%w (got %s)", ErrUnsupportedImage, img.ContentType)
		case "Data":
			if fe.Tag() == "max" {
				return ErrImageTooLarge
			}
			return fmt.Errorf("empty image: %w", verrs)
		}
	}
	return verrs
}
