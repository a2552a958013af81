package util

import (
	"bytes"
	"image"
	"io"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// GetSafeContentType 基于文件头部嗅探真实的 MIME 类型，不信任客户端声明
func GetSafeContentType(file io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, "读取文件头失败")
	}

	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return "", errors.Wrap(err, "文件指针复位失败")
	}

	return http.DetectContentType(buf[:n]), nil
}

// MakeThumbnail 等比缩放图片，长边不超过 maxEdge，输出 JPEG
func MakeThumbnail(file io.ReadSeeker, maxEdge int) (*bytes.Buffer, error) {
	src, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(err, "图片解码失败")
	}

	thumb := imaging.Fit(src, maxEdge, maxEdge, imaging.Lanczos)

	var out bytes.Buffer
	if err = imaging.Encode(&out, thumb, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, errors.Wrap(err, "缩略图编码失败")
	}
	return &out, nil
}

// Dimensions 返回图片宽高
func Dimensions(file io.ReadSeeker) (int, int, error) {
	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, err
	}
	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
