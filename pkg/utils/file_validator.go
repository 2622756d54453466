package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/samber/lo"

	"calibration-tracker/config"
)

// ValidateFile проверяет размер и реальный тип содержимого (по первым 512 байтам), а не заголовок клиента.
func ValidateFile(fileHeader *multipart.FileHeader, file io.ReadSeeker, contextName string) error {
	rules, ok := config.UploadContexts[contextName]
	if !ok {
		return fmt.Errorf("неизвестный контекст загрузки: %s", contextName)
	}

	if rules.MaxSizeMB > 0 {
		maxSizeBytes := rules.MaxSizeMB * 1024 * 1024
		if fileHeader.Size > maxSizeBytes {
			return fmt.Errorf("размер файла (%d KB) превышает лимит в %d MB", fileHeader.Size/1024, rules.MaxSizeMB)
		}
	}

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("не удалось прочитать файл для определения типа")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("не удалось сбросить указатель файла")
	}

	mimeType := http.DetectContentType(buffer[:n])
	if strings.HasPrefix(mimeType, "text/") && strings.HasPrefix(strings.TrimSpace(string(buffer[:n])), "<svg") {
		mimeType = "image/svg+xml"
	}
	mimeType = strings.TrimSpace(strings.Split(mimeType, ";")[0])

	allowed := lo.ContainsBy(rules.AllowedMimeTypes, func(rule string) bool {
		if strings.HasSuffix(rule, "/") {
			return strings.HasPrefix(mimeType, rule)
		}
		return mimeType == rule
	})
	if !allowed {
		return fmt.Errorf("недопустимый тип файла: %s", mimeType)
	}

	return nil
}
