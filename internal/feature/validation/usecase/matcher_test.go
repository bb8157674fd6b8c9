package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"treasure_backend/internal/feature/validation/domain/entity"
	"treasure_backend/internal/feature/validation/usecase"
)

func TestObjectMatches(t *testing.T) {
	t.Parallel()

	treeKeywords := []string{"tree", "árbol", "trunk"}

	tests := []struct {
		name     string
		desc     *entity.VisionDescription
		keywords []string
		want     bool
	}{
		{name: "exact keyword", desc: &entity.VisionDescription{MainObject: "tree"}, keywords: treeKeywords, want: true},
		{name: "accent insensitive", desc: &entity.VisionDescription{MainObject: "ÁRBOL"}, keywords: treeKeywords, want: true},
		{name: "detected contains keyword", desc: &entity.VisionDescription{MainObject: "old oak tree"}, keywords: treeKeywords, want: true},
		{name: "keyword contains detected", desc: &entity.VisionDescription{MainObject: "door"}, keywords: []string{"door frame"}, want: true},
		{name: "negated main label", desc: &entity.VisionDescription{MainObject: "not a tree"}, keywords: treeKeywords, want: false},
		{name: "spanish negation", desc: &entity.VisionDescription{MainObject: "sin árbol"}, keywords: treeKeywords, want: false},
		{
			name:     "falls back to all objects",
			desc:     &entity.VisionDescription{MainObject: "sky", AllObjects: []string{"cloud", "tree trunk"}},
			keywords: treeKeywords,
			want:     true,
		},
		{
			name:     "negated entry in all objects is skipped",
			desc:     &entity.VisionDescription{MainObject: "sky", AllObjects: []string{"without tree"}},
			keywords: treeKeywords,
			want:     false,
		},
		{name: "empty keywords never match", desc: &entity.VisionDescription{MainObject: "tree"}, keywords: nil, want: false},
		{name: "empty label never matches", desc: &entity.VisionDescription{MainObject: ""}, keywords: treeKeywords, want: false},
		{name: "nil description", desc: nil, keywords: treeKeywords, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, usecase.ObjectMatches(tt.desc, tt.keywords))
		})
	}
}

func TestColorMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		color  string
		colors []string
		want   bool
	}{
		{name: "exact", color: "red", colors: []string{"red", "rojo"}, want: true},
		{name: "spanish synonym", color: "Rojo", colors: []string{"red", "rojo"}, want: true},
		{name: "shade contains token", color: "dark blue", colors: []string{"blue", "azul"}, want: true},
		{name: "accented", color: "marrón", colors: []string{"brown", "marron"}, want: true},
		{name: "mismatch", color: "green", colors: []string{"red", "rojo"}, want: false},
		{name: "empty detected color", color: "", colors: []string{"red"}, want: false},
		{name: "empty palette", color: "red", colors: []string{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := &entity.VisionDescription{DominantColor: tt.color}
			assert.Equal(t, tt.want, usecase.ColorMatches(d, tt.colors))
		})
	}
}
