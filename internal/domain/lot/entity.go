package lot

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidName       = errors.New("lot name must be 3-100 characters")
	ErrInvalidAddress    = errors.New("lot address must be 10-200 characters")
	ErrInvalidPostalCode = errors.New("postal code must be exactly 6 digits")
	ErrInvalidPrice      = errors.New("hourly price must be positive and at most 10000.00")
	ErrInvalidCapacity   = errors.New("capacity must be between 1 and 1000")
)

const (
	MinNameLength    = 3
	MaxNameLength    = 100
	MinAddressLength = 10
	MaxAddressLength = 200
	// Price bounds in cents; the API boundary speaks decimal units.
	MaxPricePerHourCents = 10_000 * 100
	MinCapacity          = 1
	MaxCapacity          = 1000
)

var postalCodeRegex = regexp.MustCompile(`^[0-9]{6}$`)

// Lot is a parking facility with a fixed spot capacity and a single
// hourly price. Capacity is immutable after creation; the spot pool is
// bulk-created alongside the lot and never resized.
type Lot struct {
	id                uuid.UUID
	name              string
	address           string
	postalCode        string
	pricePerHourCents int64
	capacity          int32
	createdAt         time.Time
	updatedAt         time.Time
}

func NewLot(name, address, postalCode string, pricePerHourCents int64, capacity int32) (*Lot, error) {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	postalCode = strings.TrimSpace(postalCode)

	if len(name) < MinNameLength || len(name) > MaxNameLength {
		return nil, ErrInvalidName
	}
	if len(address) < MinAddressLength || len(address) > MaxAddressLength {
		return nil, ErrInvalidAddress
	}
	if !postalCodeRegex.MatchString(postalCode) {
		return nil, ErrInvalidPostalCode
	}
	if err := ValidatePriceCents(pricePerHourCents); err != nil {
		return nil, err
	}
	if capacity < MinCapacity || capacity > MaxCapacity {
		return nil, ErrInvalidCapacity
	}

	return &Lot{
		id:                uuid.New(),
		name:              name,
		address:           address,
		postalCode:        postalCode,
		pricePerHourCents: pricePerHourCents,
		capacity:          capacity,
	}, nil
}

func ValidatePriceCents(cents int64) error {
	if cents <= 0 || cents > MaxPricePerHourCents {
		return ErrInvalidPrice
	}
	return nil
}

func (l *Lot) ID() uuid.UUID            { return l.id }
func (l *Lot) Name() string             { return l.name }
func (l *Lot) Address() string          { return l.address }
func (l *Lot) PostalCode() string       { return l.postalCode }
func (l *Lot) PricePerHourCents() int64 { return l.pricePerHourCents }
func (l *Lot) Capacity() int32          { return l.capacity }
func (l *Lot) CreatedAt() time.Time     { return l.createdAt }
func (l *Lot) UpdatedAt() time.Time     { return l.updatedAt }
