package controllers

import (
	"net/http"
	"path"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"calibration-tracker/config"
	"calibration-tracker/internal/dto"
	"calibration-tracker/pkg/constants"
	apperrors "calibration-tracker/pkg/errors"
	"calibration-tracker/pkg/filestorage"
	"calibration-tracker/pkg/utils"
)

type UploadController struct {
	fileStorage filestorage.FileStorageInterface
	urlPrefix   string
	logger      *zap.Logger
}

func NewUploadController(fileStorage filestorage.FileStorageInterface, urlPrefix string, logger *zap.Logger) *UploadController {
	return &UploadController{fileStorage: fileStorage, urlPrefix: urlPrefix, logger: logger}
}

// Upload принимает один файл в поле "file" и возвращает путь, под которым он раздаётся.
func (ctrl *UploadController) Upload(c echo.Context) error {
	uploadContext := constants.UploadContextDocument.String()
	rules := config.UploadContexts[uploadContext]

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c,
			apperrors.NewHttpError(http.StatusBadRequest, "Файл не был передан", apperrors.ErrBadRequest, nil),
			ctrl.logger,
		)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c,
			apperrors.NewHttpError(http.StatusInternalServerError, "Ошибка обработки файла", err, nil),
			ctrl.logger,
		)
	}
	defer src.Close()

	if err := utils.ValidateFile(fileHeader, src, uploadContext); err != nil {
		return utils.ErrorResponse(c,
			apperrors.NewHttpError(http.StatusBadRequest, err.Error(), apperrors.ErrBadRequest, nil),
			ctrl.logger,
		)
	}

	savedPath, err := ctrl.fileStorage.Save(src, fileHeader.Filename, rules.PathPrefix)
	if err != nil {
		return utils.ErrorResponse(c,
			apperrors.NewHttpError(http.StatusInternalServerError, "Ошибка сохранения файла", err, nil),
			ctrl.logger,
		)
	}
	ctrl.logger.Info("Файл загружен", zap.String("fileName", fileHeader.Filename), zap.String("path", savedPath))

	res := dto.UploadResponseDTO{
		FileName: fileHeader.Filename,
		FilePath: path.Join(ctrl.urlPrefix, savedPath),
	}
	return utils.SuccessResponse(c, res, "Файл успешно загружен", http.StatusOK)
}
