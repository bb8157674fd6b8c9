// Package imageprep は画像をビジョンモデルへ送る前に縮小・JPEG再エンコードします。
package imageprep

import (
	"bytes"
	"image"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/webp"
)

const (
	// DefaultMaxDimension は長辺の既定最大ピクセル数です。
	DefaultMaxDimension = 1024
	// DefaultJPEGQuality は再エンコード時の既定JPEG品質です。
	DefaultJPEGQuality = 70
	jpegMIME           = "image/jpeg"
)

// Preparer は画像を縮小し、JPEGとして再エンコードします。
type Preparer struct {
	maxDim  int
	quality int
}

// NewPreparer はPreparerの新しいインスタンスを生成します。0以下の値は既定値になります。
func NewPreparer(maxDim, quality int) *Preparer {
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &Preparer{maxDim: maxDim, quality: quality}
}

// Prepare は送信用の画像データとMIMEタイプを返します。
// デコードやエンコードに失敗した場合は元のデータをそのまま返します。
func (p *Preparer) Prepare(data []byte) ([]byte, string) {
	img, err := decode(data)
	if err != nil {
		logrus.WithError(err).Debug("image could not be decoded, sending original bytes")
		return data, http.DetectContentType(data)
	}

	b := img.Bounds()
	if w, h := b.Dx(), b.Dy(); w > p.maxDim || h > p.maxDim {
		if w >= h {
			img = imaging.Resize(img, p.maxDim, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, p.maxDim, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.quality)); err != nil {
		logrus.WithError(err).Warn("image re-encode failed, sending original bytes")
		return data, http.DetectContentType(data)
	}
	return buf.Bytes(), jpegMIME
}

// decode は標準フォーマット（EXIFの向きを補正）を試し、失敗すればWebPとしてデコードします。
func decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err == nil {
		return img, nil
	}
	if wimg, werr := webp.Decode(bytes.NewReader(data)); werr == nil {
		return wimg, nil
	}
	return nil, err
}
