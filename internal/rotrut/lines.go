package rotrut

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verifikat-dev/verifikat/internal/model"
	"github.com/verifikat-dev/verifikat/internal/money"
)

// lineFile is the on-disk shape of an invoice line list. Amounts are strings
// so that Swedish notation ("1 250,00") is accepted.
type lineFile struct {
	Lines []struct {
		Description string `yaml:"description"`
		Quantity    string `yaml:"quantity"`
		UnitPrice   string `yaml:"unit_price"`
		VatRate     string `yaml:"vat_rate"`
		Kind        string `yaml:"kind"`
		Role        string `yaml:"role"`
		RotRut      string `yaml:"rot_rut"`
	} `yaml:"lines"`
}

// ReadLines decodes a YAML list of invoice lines.
func ReadLines(r io.Reader) ([]model.ArticleLine, error) {
	var f lineFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding lines: %w", err)
	}

	out := make([]model.ArticleLine, 0, len(f.Lines))
	for i, l := range f.Lines {
		line := model.ArticleLine{Description: l.Description}
		var err error
		if line.Quantity, err = money.ParseAmount(l.Quantity); err != nil {
			return nil, fmt.Errorf("line %d: quantity: %w", i+1, err)
		}
		if line.UnitPrice, err = money.ParseAmount(l.UnitPrice); err != nil {
			return nil, fmt.Errorf("line %d: unit_price: %w", i+1, err)
		}
		if line.VatRate, err = money.ParseRate(l.VatRate); err != nil {
			return nil, fmt.Errorf("line %d: vat_rate: %w", i+1, err)
		}
		if line.Kind, err = parseKind(l.Kind); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if line.Role, err = parseRole(l.Role); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if line.RotRut, err = parseType(l.RotRut); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, line)
	}
	return out, nil
}

func parseKind(s string) (model.ArticleKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "goods", "vara":
		return model.KindGoods, nil
	case "service", "tjänst":
		return model.KindService, nil
	}
	return model.KindGoods, fmt.Errorf("unknown kind %q", s)
}

func parseRole(s string) (model.LineRole, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return model.RoleUnset, nil
	case "labor", "arbete":
		return model.RoleLabor, nil
	case "material":
		return model.RoleMaterial, nil
	case "none":
		return model.RoleNone, nil
	}
	return model.RoleUnset, fmt.Errorf("unknown role %q", s)
}

func parseType(s string) (model.RotRutType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return model.RotRutNone, nil
	case "rot":
		return model.ROT, nil
	case "rut":
		return model.RUT, nil
	}
	return model.RotRutNone, fmt.Errorf("unknown rot_rut type %q", s)
}
