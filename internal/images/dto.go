package images

// ImageResponse is the creation response for an uploaded image. The storage
// key is internal and never exposed; clients fetch content via presigned
// URLs from the listing endpoints.
type ImageResponse struct {
	ImageID   string `json:"imageId"`
	Owner     string `json:"owner"`
	Filename  string `json:"filename"`
	CreatedAt string `json:"createdAt"`
	Status    string `json:"status"`
}

func toResponse(img Image) ImageResponse {
	return ImageResponse{
		ImageID:   img.ID,
		Owner:     img.Owner,
		Filename:  img.OriginalFilename,
		CreatedAt: img.CreatedAt,
		Status:    img.Status,
	}
}
