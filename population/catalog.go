package population

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/teranos/auragraph/errors"
	"github.com/teranos/auragraph/internal/util"
)

// DefaultQualities is the attribute vocabulary used when no catalog is configured.
var DefaultQualities = []string{
	"trust", "humor", "ambition", "empathy", "honesty", "creativity",
	"patience", "loyalty", "curiosity", "kindness", "courage", "discipline",
}

// DefaultNames is the name pool used when no catalog is configured.
var DefaultNames = []string{
	"Ada", "Alba", "Amir", "Ana", "Aiko", "Bruno", "Carla", "Chen",
	"Dario", "Elena", "Emil", "Farah", "Gael", "Hana", "Ines", "Ivan",
	"Jana", "Joel", "Kai", "Lara", "Leo", "Lina", "Marco", "Mei",
	"Nadia", "Nico", "Olga", "Omar", "Paula", "Quinn", "Rosa", "Sami",
	"Sofia", "Teo", "Uma", "Vera", "Wen", "Xavi", "Yara", "Zoe",
}

// Catalog is the vocabulary persons are drawn from.
type Catalog struct {
	Names     []string `toml:"names" json:"names"`
	Qualities []string `toml:"qualities" json:"qualities"`
}

// DefaultCatalog returns a copy of the built-in catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		Names:     append([]string(nil), DefaultNames...),
		Qualities: append([]string(nil), DefaultQualities...),
	}
}

// LoadCatalog decodes a TOML catalog file:
//
//	names = ["Ada", "Bruno"]
//	qualities = ["trust", "humor", "ambition"]
//
// Unknown keys are rejected so a typo does not silently fall back to defaults.
func LoadCatalog(path string) (Catalog, error) {
	var c Catalog
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Catalog{}, errors.Wrapf(err, "failed to decode catalog %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Catalog{}, errors.Wrapf(errors.ErrInvalidRequest, "catalog %s has unknown keys: %s", path, strings.Join(keys, ", "))
	}

	c.Names = util.Dedupe(trimAll(c.Names))
	c.Qualities = util.Dedupe(trimAll(c.Qualities))
	if len(c.Names) == 0 {
		return Catalog{}, errors.Wrapf(errors.ErrInvalidRequest, "catalog %s has no names", path)
	}
	if len(c.Qualities) == 0 {
		return Catalog{}, errors.Wrapf(errors.ErrInvalidRequest, "catalog %s has no qualities", path)
	}
	return c, nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
