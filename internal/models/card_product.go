package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	BenefitTimingMonthly    = "monthly"
	BenefitTimingQuarterly  = "quarterly"
	BenefitTimingSemiAnnual = "semi_annual"
	BenefitTimingAnnual     = "annual"
)

var (
	ErrInvalidBenefitTiming = errors.New("invalid benefit timing")
	ErrInvalidMaxAmount     = errors.New("benefit max amount must be a positive decimal")
	ErrNoKeywords           = errors.New("benefit requires at least one keyword")
)

// CardProduct is a catalog entry for a card product and its recurring benefits.
// The catalog is maintained by administrators; the matching engine treats it
// as read-only input.
type CardProduct struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	IssuerName  string    `gorm:"type:varchar(120);not null;index" json:"issuer_name"`
	ProductName string    `gorm:"type:varchar(200);not null" json:"product_name"`
	Active      bool      `gorm:"not null;default:true;index" json:"active"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`

	// Associations
	Benefits []Benefit `gorm:"foreignKey:ProductID" json:"benefits,omitempty"`
}

// BeforeCreate hook for CardProduct
func (p *CardProduct) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return p.Validate()
}

// Validate validates the catalog product fields
func (p *CardProduct) Validate() error {
	if p.IssuerName == "" {
		return errors.New("issuer name is required")
	}
	if p.ProductName == "" {
		return errors.New("product name is required")
	}
	return nil
}

// TableName returns the table name for CardProduct
func (p *CardProduct) TableName() string {
	return "card_products"
}

// Benefit is a recurring card perk (statement credit, bonus) with an optional
// per-cycle dollar cap and a keyword set used for transaction matching.
type Benefit struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	ProductID uuid.UUID        `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string           `gorm:"type:varchar(200);not null" json:"name"`
	Timing    string           `gorm:"type:varchar(20);not null" json:"timing"`
	MaxAmount *decimal.Decimal `gorm:"type:decimal(15,2)" json:"max_amount,omitempty"`
	Keywords  StringList       `gorm:"type:text;not null" json:"keywords"`
	Position  int              `gorm:"not null;default:0" json:"position"`
	Active    bool             `gorm:"not null;default:true;index" json:"active"`
	CreatedAt time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time        `gorm:"not null" json:"updated_at"`

	// Associations
	Product CardProduct `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate hook for Benefit
func (b *Benefit) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return b.Validate()
}

// Validate validates the benefit fields
func (b *Benefit) Validate() error {
	if b.ProductID == uuid.Nil {
		return errors.New("product ID is required")
	}
	if b.Name == "" {
		return errors.New("benefit name is required")
	}
	if !IsValidBenefitTiming(b.Timing) {
		return ErrInvalidBenefitTiming
	}
	if b.MaxAmount != nil && b.MaxAmount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidMaxAmount
	}
	if len(b.Keywords) == 0 {
		return ErrNoKeywords
	}
	return nil
}

// TableName returns the table name for Benefit
func (b *Benefit) TableName() string {
	return "benefits"
}

// IsValidBenefitTiming checks if the timing value is a known cadence
func IsValidBenefitTiming(timing string) bool {
	switch timing {
	case BenefitTimingMonthly, BenefitTimingQuarterly, BenefitTimingSemiAnnual, BenefitTimingAnnual:
		return true
	default:
		return false
	}
}

// CycleWindow returns the start (inclusive) and end (exclusive) of the benefit
// cycle containing the given instant for a timing cadence. Windows are
// calendar-aligned in UTC: months, quarters, half-years (Jan-Jun / Jul-Dec)
// and years.
func CycleWindow(timing string, at time.Time) (time.Time, time.Time, error) {
	at = at.UTC()
	year := at.Year()

	switch timing {
	case BenefitTimingMonthly:
		start := time.Date(year, at.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0), nil
	case BenefitTimingQuarterly:
		quarterStart := time.Month(((int(at.Month())-1)/3)*3 + 1)
		start := time.Date(year, quarterStart, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 3, 0), nil
	case BenefitTimingSemiAnnual:
		halfStart := time.January
		if at.Month() >= time.July {
			halfStart = time.July
		}
		start := time.Date(year, halfStart, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 6, 0), nil
	case BenefitTimingAnnual:
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, time.Time{}, ErrInvalidBenefitTiming
	}
}

// StringList stores a slice of strings as a JSON array column. Works on both
// PostgreSQL and SQLite.
type StringList []string

// Value implements driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	bytes, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(bytes), nil
}

// Scan implements sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	var tmp []string
	if err := json.Unmarshal(bytes, &tmp); err != nil {
		return err
	}
	*l = StringList(tmp)
	return nil
}
