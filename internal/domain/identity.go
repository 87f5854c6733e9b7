package domain

import (
	"encoding/json"
	"strings"
)

// flexID is a string that also accepts JSON numbers and null, mirroring the
// loose typing of the declarative marker payloads embedded by themes.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// WidgetConfig is the normalized per-marker configuration. All fields are
// plain strings; absent values are empty strings so downstream comparisons
// are total.
type WidgetConfig struct {
	CustomerID    string
	CustomerEmail string
	ProductID     string
	VariantID     string
	APIBaseURL    string
	ShopDomain    string
	LoginURL      string
}

type widgetConfigWire struct {
	CustomerID    flexID `json:"customerId"`
	CustomerEmail flexID `json:"customerEmail"`
	ProductID     flexID `json:"productId"`
	VariantID     flexID `json:"variantId"`
	APIBaseURL    flexID `json:"apiBaseUrl"`
	ShopDomain    flexID `json:"shopDomain"`
	LoginURL      flexID `json:"loginUrl"`
}

// ParseWidgetConfig decodes a marker's JSON payload. Malformed payloads yield
// the empty configuration rather than an error: a broken marker renders an
// inert widget, never a broken page.
func ParseWidgetConfig(raw []byte) WidgetConfig {
	if len(raw) == 0 {
		return WidgetConfig{}
	}
	var wire widgetConfigWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return WidgetConfig{}
	}
	return WidgetConfig{
		CustomerID:    string(wire.CustomerID),
		CustomerEmail: string(wire.CustomerEmail),
		ProductID:     string(wire.ProductID),
		VariantID:     string(wire.VariantID),
		APIBaseURL:    string(wire.APIBaseURL),
		ShopDomain:    string(wire.ShopDomain),
		LoginURL:      string(wire.LoginURL),
	}
}

// Identity is the resolved visitor identity for a widget instance.
type Identity struct {
	CustomerID string
	Email      string
}

// IsGuest reports whether the visitor has no resolved customer identity.
func (i Identity) IsGuest() bool {
	return i.CustomerID == ""
}

// ResolveIdentity derives the visitor identity from a widget configuration.
// An empty customer ID means guest; there is no error path.
func ResolveIdentity(cfg WidgetConfig) Identity {
	if cfg.CustomerID == "" {
		return Identity{}
	}
	return Identity{CustomerID: cfg.CustomerID, Email: cfg.CustomerEmail}
}
