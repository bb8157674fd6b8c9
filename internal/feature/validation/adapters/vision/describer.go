// Package vision はGoogle Cloud Vision APIを使用した画像Describerを提供します。
// ラベル検出・物体検出・画像プロパティの結果をVisionDescriptionに組み立てます。
package vision

import (
	"context"
	"fmt"
	"math"
	"strings"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/googleapis/gax-go/v2"

	"treasure_backend/internal/feature/validation/domain"
	"treasure_backend/internal/feature/validation/domain/entity"
	"treasure_backend/internal/feature/validation/usecase"
)

// Tag はVerdictに記録されるプロセッサー識別子です。
const Tag = "cloud-vision"

const maxResults = 10

// namedColor は色トークンと代表RGB値です。
type namedColor struct {
	name    string
	r, g, b float64
}

// palette は支配色を色トークンに丸めるための基準色です。
var palette = []namedColor{
	{"red", 200, 30, 30},
	{"orange", 240, 140, 20},
	{"yellow", 240, 220, 40},
	{"green", 40, 150, 50},
	{"blue", 30, 80, 200},
	{"brown", 120, 75, 40},
	{"beige", 225, 200, 160},
	{"gray", 128, 128, 128},
	{"white", 245, 245, 245},
	{"black", 15, 15, 15},
}

// annotator はBatchAnnotateImagesを提供するクライアントです。テストで差し替えます。
type annotator interface {
	BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateImagesResponse, error)
}

// SDKのクライアントがannotatorを満たすことをコンパイル時に検証します。
var _ annotator = (*gvision.ImageAnnotatorClient)(nil)

// VisionDescriber はGoogle Cloud Vision APIを使用して画像を説明します。
type VisionDescriber struct {
	client annotator
	closer func() error
}

// VisionDescriberがDescriberを実装していることをコンパイル時に検証します。
var _ usecase.Describer = (*VisionDescriber)(nil)

// NewVisionDescriber はADCを使用してVisionDescriberの新しいインスタンスを生成します。
func NewVisionDescriber(ctx context.Context) (*VisionDescriber, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create vision client: %v", domain.ErrDescriberUnavailable, err)
	}
	return &VisionDescriber{client: client, closer: client.Close}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionDescriber) Close() error {
	if v.closer == nil {
		return nil
	}
	return v.closer()
}

// Tag はプロセッサー識別子を返します。
func (v *VisionDescriber) Tag() string { return Tag }

// Describe は画像を注釈し、その結果をVisionDescriptionに変換します。
// Cloud Visionはプロンプトを解釈しないため、req.Promptは使用しません。
func (v *VisionDescriber) Describe(ctx context.Context, req usecase.DescribeRequest) (*entity.VisionDescription, error) {
	batch := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: req.Image},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_LABEL_DETECTION, MaxResults: maxResults},
					{Type: visionpb.Feature_OBJECT_LOCALIZATION, MaxResults: maxResults},
					{Type: visionpb.Feature_IMAGE_PROPERTIES},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("vision API request failed: %w", err)
	}
	if len(resp.GetResponses()) == 0 {
		return nil, fmt.Errorf("%w: vision API returned no responses", domain.ErrMalformedResponse)
	}

	r := resp.GetResponses()[0]
	if r.GetError() != nil {
		return nil, fmt.Errorf("vision API error: %s", r.GetError().GetMessage())
	}
	return toDescription(r, req), nil
}

// toDescription はAnnotateImageResponseをVisionDescriptionに変換します。
// 主物体は最もスコアの高い検出物体、なければ最上位のラベルです。
func toDescription(r *visionpb.AnnotateImageResponse, req usecase.DescribeRequest) *entity.VisionDescription {
	d := &entity.VisionDescription{
		AllObjects:   []string{},
		ColorMatters: req.ExpectedColor != "",
	}
	seen := make(map[string]struct{})
	add := func(label string) {
		key := strings.ToLower(strings.TrimSpace(label))
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		d.AllObjects = append(d.AllObjects, key)
	}

	var best float32 = -1
	for _, o := range r.GetLocalizedObjectAnnotations() {
		add(o.GetName())
		if o.GetScore() > best {
			best = o.GetScore()
			d.MainObject = strings.ToLower(o.GetName())
			d.ObjectConfidence = float64(o.GetScore())
		}
	}

	labels := make([]string, 0, len(r.GetLabelAnnotations()))
	for _, l := range r.GetLabelAnnotations() {
		add(l.GetDescription())
		labels = append(labels, l.GetDescription())
		if d.MainObject == "" {
			d.MainObject = strings.ToLower(l.GetDescription())
			d.ObjectConfidence = float64(l.GetScore())
		}
	}
	d.Description = strings.Join(labels, ", ")

	var top *visionpb.ColorInfo
	for _, c := range r.GetImagePropertiesAnnotation().GetDominantColors().GetColors() {
		if top == nil || c.GetScore() > top.GetScore() {
			top = c
		}
	}
	if top != nil && top.GetColor() != nil {
		col := top.GetColor()
		d.DominantColor = nearestColor(float64(col.GetRed()), float64(col.GetGreen()), float64(col.GetBlue()))
		d.ColorConfidence = usecase.Clamp(float64(top.GetScore()))
	}

	d.ObjectConfidence = usecase.Clamp(d.ObjectConfidence)
	return d
}

// nearestColor はRGB値に最も近い色トークンを返します。
func nearestColor(r, g, b float64) string {
	name := ""
	bestDist := math.MaxFloat64
	for _, p := range palette {
		dist := math.Pow(r-p.r, 2) + math.Pow(g-p.g, 2) + math.Pow(b-p.b, 2)
		if dist < bestDist {
			bestDist = dist
			name = p.name
		}
	}
	return name
}
