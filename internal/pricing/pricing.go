package pricing

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Tobiscuit/threechicks-admin-api/internal/domain"
	"github.com/Tobiscuit/threechicks-admin-api/pkg/errors"
)

// Config is the full pricing configuration: the three component collections
// a variant is built from. Variants are always derived from these; they are
// never stored or hand-edited.
type Config struct {
	Vessels []domain.Vessel
	Waxes   []domain.Wax
	Wicks   []domain.Wick
}

// Variant is one (vessel x wax x wick) combination with its computed price.
type Variant struct {
	ID         string `json:"id"`
	VesselName string `json:"vessel_name"`
	SizeOz     int    `json:"size_oz"`
	WaxName    string `json:"wax_name"`
	WickName   string `json:"wick_name"`
	SKU        string `json:"sku"`
	PriceCents int    `json:"price_cents"`
}

// ComputePrice maps one component choice to a final price in cents:
//
//	round((baseCost + wickCost + waxPerOz*sizeOz) * (1 + marginPct/100))
//
// Inputs must satisfy the domain invariants (non-negative integer costs,
// size > 0); the result is always a non-negative integer.
func ComputePrice(vessel domain.Vessel, wax domain.Wax, wick domain.Wick) int {
	cost := float64(vessel.BaseCostCents + wick.CostCents + wax.PricePerOzCents*vessel.SizeOz)
	return int(math.Round(cost * (1 + vessel.MarginPct/100)))
}

// PriceFor resolves the named components and computes the price. Unknown
// names fail with ErrConfigurationNotFound; pricing never defaults to zero.
func (c *Config) PriceFor(vesselName string, sizeOz int, waxName, wickName string) (int, error) {
	vessel, ok := c.FindVessel(vesselName, sizeOz)
	if !ok {
		return 0, &errors.ErrConfigurationNotFound{Kind: "vessel", Name: fmt.Sprintf("%s %doz", vesselName, sizeOz)}
	}
	wax, ok := c.FindWax(waxName)
	if !ok {
		return 0, &errors.ErrConfigurationNotFound{Kind: "wax", Name: waxName}
	}
	wick, ok := c.FindWick(wickName)
	if !ok {
		return 0, &errors.ErrConfigurationNotFound{Kind: "wick", Name: wickName}
	}
	return ComputePrice(vessel, wax, wick), nil
}

// FindVessel looks a vessel up by its (name, sizeOz) key.
func (c *Config) FindVessel(name string, sizeOz int) (domain.Vessel, bool) {
	for _, v := range c.Vessels {
		if strings.EqualFold(v.Name, name) && v.SizeOz == sizeOz {
			return v, true
		}
	}
	return domain.Vessel{}, false
}

func (c *Config) FindWax(name string) (domain.Wax, bool) {
	for _, w := range c.Waxes {
		if strings.EqualFold(w.Name, name) {
			return w, true
		}
	}
	return domain.Wax{}, false
}

func (c *Config) FindWick(name string) (domain.Wick, bool) {
	for _, w := range c.Wicks {
		if strings.EqualFold(w.Name, name) {
			return w, true
		}
	}
	return domain.Wick{}, false
}

// Validate checks the domain invariants: positive sizes, non-negative costs
// and margins, and uniqueness of the (name, sizeOz) vessel key. Duplicate
// vessels would create duplicate Shopify products.
func (c *Config) Validate() error {
	fields := map[string]string{}
	seen := map[string]bool{}
	for _, v := range c.Vessels {
		if v.Name == "" {
			fields["vessel.name"] = "name is required"
		}
		if v.SizeOz <= 0 {
			fields["vessel.size_oz"] = fmt.Sprintf("%s: size must be a positive integer", v.Name)
		}
		if v.BaseCostCents < 0 {
			fields["vessel.base_cost_cents"] = fmt.Sprintf("%s: cost must be non-negative", v.Name)
		}
		if v.MarginPct < 0 {
			fields["vessel.margin_pct"] = fmt.Sprintf("%s: margin must be non-negative", v.Name)
		}
		key := fmt.Sprintf("%s|%d", strings.ToLower(v.Name), v.SizeOz)
		if seen[key] {
			fields["vessel"] = fmt.Sprintf("duplicate vessel key (%s, %doz)", v.Name, v.SizeOz)
		}
		seen[key] = true
	}
	for _, w := range c.Waxes {
		if w.Name == "" {
			fields["wax.name"] = "name is required"
		}
		if w.PricePerOzCents < 0 {
			fields["wax.price_per_oz_cents"] = fmt.Sprintf("%s: cost must be non-negative", w.Name)
		}
	}
	for _, w := range c.Wicks {
		if w.Name == "" {
			fields["wick.name"] = "name is required"
		}
		if w.CostCents < 0 {
			fields["wick.cost_cents"] = fmt.Sprintf("%s: cost must be non-negative", w.Name)
		}
	}
	if len(fields) > 0 {
		return &errors.ErrValidation{Message: "invalid pricing configuration", Fields: fields}
	}
	return nil
}

// EnumerateVariants produces every (vessel x wax x wick) combination with a
// stable synthetic id, sorted by (vessel, wax, wick) ascending. The matrix is
// regenerated on demand; it previews the effect of a configuration change
// before anything is pushed to Shopify.
func (c *Config) EnumerateVariants() []Variant {
	variants := make([]Variant, 0, len(c.Vessels)*len(c.Waxes)*len(c.Wicks))
	for _, v := range c.Vessels {
		for _, wax := range c.Waxes {
			for _, wick := range c.Wicks {
				sku := fmt.Sprintf("%s-%s-%s", Slug(vesselKey(v)), Slug(wax.Name), Slug(wick.Name))
				variants = append(variants, Variant{
					ID:         sku,
					VesselName: v.Name,
					SizeOz:     v.SizeOz,
					WaxName:    wax.Name,
					WickName:   wick.Name,
					SKU:        sku,
					PriceCents: ComputePrice(v, wax, wick),
				})
			}
		}
	}
	sort.Slice(variants, func(i, j int) bool {
		a, b := variants[i], variants[j]
		if a.VesselName != b.VesselName {
			return a.VesselName < b.VesselName
		}
		if a.SizeOz != b.SizeOz {
			return a.SizeOz < b.SizeOz
		}
		if a.WaxName != b.WaxName {
			return a.WaxName < b.WaxName
		}
		return a.WickName < b.WickName
	})
	return variants
}

// VariantsForVessel enumerates the wax x wick combinations for one vessel,
// in the same order the full enumeration would place them.
func (c *Config) VariantsForVessel(v domain.Vessel) []Variant {
	sub := Config{Vessels: []domain.Vessel{v}, Waxes: c.Waxes, Wicks: c.Wicks}
	return sub.EnumerateVariants()
}

func vesselKey(v domain.Vessel) string {
	return fmt.Sprintf("%s %doz", v.Name, v.SizeOz)
}

// Slug lowercases a name and collapses everything that is not a letter or
// digit into single hyphens.
func Slug(s string) string {
	var b strings.Builder
	prevHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
