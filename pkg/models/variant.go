package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// swagger:model variant
// Variant represents one physical variation of a catalog item (colorway,
// lens finish, shelf location). Stored opaquely for the catalog browser.
type Variant struct {
	gorm.Model
	Sku               string `json:"sku"`
	ItemNumber        string `json:"itemNumber" gorm:"index"`
	Location          string `json:"location"`
	BackstockLocation string `json:"backstockLocation"`
	Color1            string `json:"color1"`
	Color2            string `json:"color2"`
	AccentColor       string `json:"accentColor"`
	FrameFinish       string `json:"frameFinish"`
	LensColor         string `json:"lensColor"`
	LensFinish        string `json:"lensFinish"`
}

var variantUpdateColumns = map[string]string{
	"itemNumber":        "item_number",
	"backstockLocation": "backstock_location",
	"accentColor":       "accent_color",
	"frameFinish":       "frame_finish",
	"lensColor":         "lens_color",
	"lensFinish":        "lens_finish",
}

// UpdateColumns translates partial-update field names into database column
// names. Names without a mapping pass through unchanged.
func (Variant) UpdateColumns(fields []string) []string {
	return translateColumns(variantUpdateColumns, fields)
}

func (v *Variant) IsValid() error {
	if strings.TrimSpace(v.Sku) == "" {
		return errors.New("failed to validate variant: sku must not be blank")
	}
	return nil
}
