package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ArticleKind is the article type of an invoice line.
type ArticleKind int

const (
	KindGoods ArticleKind = iota
	KindService
)

func (k ArticleKind) String() string {
	switch k {
	case KindGoods:
		return "goods"
	case KindService:
		return "service"
	}
	return fmt.Sprintf("ArticleKind(%d)", int(k))
}

// LineRole is how an invoice line takes part in a ROT/RUT deduction.
type LineRole int

const (
	RoleUnset    LineRole = iota // not flagged; derived from the article kind
	RoleLabor                    // arbetskostnad
	RoleMaterial                 // material, never deductible
	RoleNone                     // explicitly outside the deduction
)

func (r LineRole) String() string {
	switch r {
	case RoleUnset:
		return "unset"
	case RoleLabor:
		return "labor"
	case RoleMaterial:
		return "material"
	case RoleNone:
		return "none"
	}
	return fmt.Sprintf("LineRole(%d)", int(r))
}

// RotRutType selects the tax-credit scheme of a labor line.
type RotRutType int

const (
	RotRutNone RotRutType = iota
	ROT
	RUT
)

func (t RotRutType) String() string {
	switch t {
	case RotRutNone:
		return "none"
	case ROT:
		return "rot"
	case RUT:
		return "rut"
	}
	return fmt.Sprintf("RotRutType(%d)", int(t))
}

// ArticleLine is one row of a customer invoice.
type ArticleLine struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	VatRate     decimal.Decimal
	Kind        ArticleKind
	Role        LineRole
	RotRut      RotRutType
}

// EffectiveRole resolves the line's role. Service lines are labor unless
// explicitly flagged otherwise; a line is material only when flagged so.
func (l ArticleLine) EffectiveRole() LineRole {
	switch l.Role {
	case RoleLabor, RoleMaterial, RoleNone:
		return l.Role
	}
	if l.Kind == KindService {
		return RoleLabor
	}
	return RoleNone
}

// Net returns quantity × unit price, unrounded.
func (l ArticleLine) Net() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// Vat returns Net × VatRate, unrounded.
func (l ArticleLine) Vat() decimal.Decimal {
	return l.Net().Mul(l.VatRate)
}
