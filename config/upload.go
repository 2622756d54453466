package config

import "calibration-tracker/pkg/constants"

// UploadRules - ограничения на файл для конкретного контекста загрузки.
// Значение, оканчивающееся на "/", разрешает всё семейство типов ("image/").
type UploadRules struct {
	AllowedMimeTypes []string
	MaxSizeMB        int64
	PathPrefix       string
}

var UploadContexts = map[string]UploadRules{
	constants.UploadContextDocument.String(): {
		AllowedMimeTypes: []string{"image/", "application/pdf"},
		MaxSizeMB:        constants.MaxUploadSizeMB,
		PathPrefix:       "documents",
	},
}
