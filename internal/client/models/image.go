package models

// ImageFile is a local image staged for upload.
type ImageFile struct {
	Name        string `validate:"required"`
	ContentType string `validate:"required,oneof=image/jpeg image/png"`
	Data        []byte `validate:"required,max=5242880"`
}

// MaxImageBytes is the largest accepted image.
const MaxImageBytes = 5 << 20

// UploadedImage is what an uploader returns for one stored file.
type UploadedImage struct {
	ID  ID     `json:"id"`
	URL string `json:"publicUrl"`
}
