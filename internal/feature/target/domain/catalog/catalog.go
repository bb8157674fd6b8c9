// Package catalog はターゲット定義とキーワード辞書を保持する静的カタログを提供します。
// データは埋め込みYAMLから起動時に一度だけ読み込まれ、以降は読み取り専用です。
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"treasure_backend/internal/feature/target/domain"
	"treasure_backend/internal/feature/target/domain/entity"
)

//go:embed catalog.yaml
var embedded []byte

// colorDoc はYAML上の色定義です。
type colorDoc struct {
	Synonyms []string          `yaml:"synonyms"`
	Display  map[string]string `yaml:"display"`
}

// targetDoc はYAML上のターゲット定義です。
type targetDoc struct {
	ID              string            `yaml:"id"`
	Name            string            `yaml:"name"`
	Description     string            `yaml:"description"`
	Category        string            `yaml:"category"`
	Icon            string            `yaml:"icon"`
	ExpectedColor   string            `yaml:"expected_color"`
	ColorIrrelevant bool              `yaml:"color_irrelevant"`
	ColorDisplay    map[string]string `yaml:"color_display"`
	ObjectKeywords  []string          `yaml:"object_keywords"`
	DefaultColors   []string          `yaml:"default_colors"`
}

type document struct {
	Colors  map[string]colorDoc `yaml:"colors"`
	Targets []targetDoc         `yaml:"targets"`
}

// targetRecord はターゲット1件分の読み込み済みデータです。
type targetRecord struct {
	target          entity.Target
	objectKeywords  []string
	defaultColors   []string
	colorDisplay    map[string]string
	colorIrrelevant bool
}

// Catalog は読み込み済みのターゲットカタログです。並行読み取りに対して安全です。
type Catalog struct {
	order   []string
	targets map[string]targetRecord
	colors  map[entity.ColorName]colorDoc
}

// Load は埋め込みのカタログYAMLを読み込みます。
func Load() (*Catalog, error) {
	return Parse(embedded)
}

// MustLoad はLoadに失敗した場合にpanicします。テストと初期化用です。
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse はYAMLドキュメントからCatalogを構築します。
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}

	c := &Catalog{
		order:   make([]string, 0, len(doc.Targets)),
		targets: make(map[string]targetRecord, len(doc.Targets)),
		colors:  make(map[entity.ColorName]colorDoc, len(doc.Colors)),
	}

	for name, cd := range doc.Colors {
		key := entity.ColorName(strings.ToLower(strings.TrimSpace(name)))
		cd.Synonyms = dedupe(cd.Synonyms)
		c.colors[key] = cd
	}

	for i, td := range doc.Targets {
		id := strings.TrimSpace(td.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: target #%d has no id", domain.ErrInvalidCatalog, i)
		}
		if _, dup := c.targets[id]; dup {
			return nil, fmt.Errorf("%w: duplicate target id %q", domain.ErrInvalidCatalog, id)
		}
		c.order = append(c.order, id)
		c.targets[id] = targetRecord{
			target: entity.Target{
				ID:            id,
				Name:          td.Name,
				Description:   td.Description,
				Category:      td.Category,
				Icon:          td.Icon,
				ExpectedColor: entity.ColorName(strings.ToLower(strings.TrimSpace(td.ExpectedColor))),
			},
			objectKeywords:  dedupe(td.ObjectKeywords),
			defaultColors:   dedupe(td.DefaultColors),
			colorDisplay:    td.ColorDisplay,
			colorIrrelevant: td.ColorIrrelevant,
		}
	}

	return c, nil
}

// Targets はカタログ定義順にすべてのターゲットを返します。
func (c *Catalog) Targets() []entity.Target {
	out := make([]entity.Target, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.targets[id].target)
	}
	return out
}

// Target はIDに対応するターゲットを返します。
func (c *Catalog) Target(id string) (entity.Target, bool) {
	r, ok := c.targets[id]
	return r.target, ok
}

// ObjectKeywords はターゲットの物体キーワード（英語・スペイン語）を返します。未知のIDでは空です。
func (c *Catalog) ObjectKeywords(targetID string) []string {
	return clone(c.targets[targetID].objectKeywords)
}

// DefaultColors はターゲットの既定カラーパレットを返します。未知のIDでは空です。
func (c *Catalog) DefaultColors(targetID string) []string {
	return clone(c.targets[targetID].defaultColors)
}

// ColorSynonyms は色トークンの同義語（英語・スペイン語）を返します。大文字小文字は区別しません。
func (c *Catalog) ColorSynonyms(name entity.ColorName) ([]string, bool) {
	cd, ok := c.colors[entity.ColorName(strings.ToLower(string(name)))]
	if !ok {
		return nil, false
	}
	return clone(cd.Synonyms), true
}

// ColorDisplay は色トークンのロケール別表示名を返します。見つからなければ空文字です。
func (c *Catalog) ColorDisplay(name entity.ColorName, locale string) string {
	cd, ok := c.colors[entity.ColorName(strings.ToLower(string(name)))]
	if !ok {
		return ""
	}
	return cd.Display[locale]
}

// TargetColorDisplay はターゲットの期待色の表示テキストを返します。見つからなければ空文字です。
func (c *Catalog) TargetColorDisplay(targetID, locale string) string {
	return c.targets[targetID].colorDisplay[locale]
}

// IsColorIrrelevant はターゲットが色を問わないカテゴリかどうかを返します。
func (c *Catalog) IsColorIrrelevant(targetID string) bool {
	return c.targets[targetID].colorIrrelevant
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func clone(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
