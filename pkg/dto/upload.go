package dto

type UploadRequest struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

type UploadResponse struct {
	OK  bool   `json:"ok"`
	URL string `json:"url"`
}
