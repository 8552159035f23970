package board

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	apperrors "github.com/louisbranch/boardwalk/internal/platform/errors"
)

//go:embed classic.yaml
var classicYAML []byte

// ChanceParams carries the arguments of a chance deck entry.
type ChanceParams struct {
	Land     int `mapstructure:"land"`
	Amount   int `mapstructure:"amount"`
	Distance int `mapstructure:"distance"`
}

// ChanceSpec is one entry of the chance deck as written in a board file.
type ChanceSpec struct {
	Kind   string
	Name   string
	Params ChanceParams
}

type boardFile struct {
	Name     string       `yaml:"name"`
	JailFine int          `yaml:"jail_fine"`
	Lands    []landFile   `yaml:"lands"`
	Chance   []chanceFile `yaml:"chance"`
}

type landFile struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Group  string `yaml:"group"`
	Price  int    `yaml:"price"`
	Rent   int    `yaml:"rent"`
	Amount int    `yaml:"amount"`
}

type chanceFile struct {
	Kind   string         `yaml:"kind"`
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
}

// Load parses a YAML board definition and its chance deck.
func Load(r io.Reader) (*Board, []ChanceSpec, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var file boardFile
	if err := dec.Decode(&file); err != nil {
		return nil, nil, apperrors.WrapWithMetadata(apperrors.CodeInvalidBoard, "decode board", nil, err)
	}

	lands := make([]Land, 0, len(file.Lands))
	for _, lf := range file.Lands {
		lands = append(lands, Land{
			Name:   lf.Name,
			Type:   LandType(strings.ToLower(strings.TrimSpace(lf.Type))),
			Group:  lf.Group,
			Price:  lf.Price,
			Rent:   lf.Rent,
			Amount: lf.Amount,
		})
	}
	b, err := New(file.Name, lands, file.JailFine)
	if err != nil {
		return nil, nil, err
	}

	specs := make([]ChanceSpec, 0, len(file.Chance))
	for i, cf := range file.Chance {
		params, err := decodeParams(cf.Params)
		if err != nil {
			return nil, nil, apperrors.WrapWithMetadata(apperrors.CodeInvalidBoard, "decode chance params",
				map[string]string{"entry": fmt.Sprint(i), "kind": cf.Kind}, err)
		}
		specs = append(specs, ChanceSpec{
			Kind:   strings.ToLower(strings.TrimSpace(cf.Kind)),
			Name:   cf.Name,
			Params: params,
		})
	}
	if len(specs) == 0 && b.HasType(LandChance) {
		return nil, nil, invalid("chance lands need at least one chance entry")
	}
	return b, specs, nil
}

// LoadFile reads a board definition from path.
func LoadFile(path string) (*Board, []ChanceSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open board %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Classic returns the built-in 40-land board and its chance deck.
func Classic() (*Board, []ChanceSpec, error) {
	return Load(bytes.NewReader(classicYAML))
}

func decodeParams(raw map[string]any) (ChanceParams, error) {
	var params ChanceParams
	if len(raw) == 0 {
		return params, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &params,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return params, err
	}
	if err := dec.Decode(raw); err != nil {
		return params, err
	}
	return params, nil
}
