package handler

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/service"
	"bytes"
	"io"
	log "log/slog"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const thumbnailMaxEdge = 640

type MediaHandler struct{}

func NewMediaHandler() *MediaHandler {
	return &MediaHandler{}
}

// Upload 接收图片上传至 MinIO，同时生成一张缩略图
func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	width, height, err := util.Dimensions(reader)
	if err != nil {
		log.WarnContext(c, "读取图片尺寸失败", "filename", file.Filename, "err", err)
	}

	ext := path.Ext(file.Filename)
	objectName := time.Now().Format("2006/01/02/") + uuid.NewString() + ext

	fileKey, err := minio.UploadFile(c.Request.Context(), objectName, reader, file.Size, contentType)
	if err != nil {
		log.ErrorContext(c, "MinIO upload failed", "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	// 缩略图失败不阻塞原图返回
	thumbKey := ""
	if _, err = reader.Seek(0, io.SeekStart); err == nil {
		if thumb, terr := util.MakeThumbnail(reader, thumbnailMaxEdge); terr == nil {
			name := strings.TrimSuffix(objectName, ext) + "_thumb.jpg"
			thumbKey, terr = minio.UploadFile(c.Request.Context(), name,
				bytes.NewReader(thumb.Bytes()), int64(thumb.Len()), "image/jpeg")
			if terr != nil {
				log.WarnContext(c, "缩略图上传失败", "err", terr)
				thumbKey = ""
			}
		} else {
			log.WarnContext(c, "缩略图生成失败", "err", terr)
		}
	}

	res := map[string]interface{}{
		"url":       minio.GetPublicURL(fileKey),
		"thumb_url": minio.GetPublicURL(thumbKey),
		"mime":      contentType,
		"width":     width,
		"height":    height,
		"size":      file.Size,
		"original":  file.Filename,
	}

	log.InfoContext(c, "media upload success", "fileKey", fileKey, "type", contentType)
	response.Success(c, res)
}
