package dto

type UploadResponseDTO struct {
	FileName string `json:"fileName"`
	FilePath string `json:"filePath"`
}
