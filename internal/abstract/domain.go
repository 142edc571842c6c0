package abstract

import (
	"errors"
	"strings"

	"github.com/inoxlang/witness/internal/value"
	"golang.org/x/exp/slices"
)

var (
	ErrValueDomainIsTop = errors.New("the value domain is top, it has no elements")

	// TOP_TYPE_DOMAIN is the domain of a value that can be of any type.
	TOP_TYPE_DOMAIN = TypeDomain{}

	// TOP_VALUE_DOMAIN is the domain of a value that can be any value of its type.
	TOP_VALUE_DOMAIN = ValueDomain{}
)

// A TypeDomain is either top or a single kind. The zero value is top.
type TypeDomain struct {
	kind value.Kind
}

func TypeDomainOf(kind value.Kind) TypeDomain {
	if kind == 0 {
		panic(errors.New("a type domain cannot be created from the zero kind"))
	}
	return TypeDomain{kind: kind}
}

func (d TypeDomain) IsTop() bool {
	return d.kind == 0
}

// GetType returns the kind of the domain, ok is false if the domain is top.
func (d TypeDomain) GetType() (kind value.Kind, ok bool) {
	return d.kind, d.kind != 0
}

// Join returns the smallest domain containing d and other.
func (d TypeDomain) Join(other TypeDomain) TypeDomain {
	if d == other {
		return d
	}
	if (d.kind == value.IntegralKind && other.kind == value.NumberKind) ||
		(d.kind == value.NumberKind && other.kind == value.IntegralKind) {
		return TypeDomainOf(value.NumberKind)
	}
	return TOP_TYPE_DOMAIN
}

func (d TypeDomain) String() string {
	if d.IsTop() {
		return "top"
	}
	return d.kind.String()
}

// A ValueDomain is either top or a finite set of concrete values. The zero value is top,
// an empty non-top domain contains no value.
type ValueDomain struct {
	elements []value.Concrete
	bounded  bool
}

// NewValueDomain creates a finite domain, duplicate elements (SameValue) are removed and the
// order of first occurrence is kept.
func NewValueDomain(elements ...value.Concrete) ValueDomain {
	domain := ValueDomain{bounded: true}

	for _, e := range elements {
		if e == nil {
			panic(errors.New("nil element in value domain"))
		}
		if !domain.Contains(e) {
			domain.elements = append(domain.elements, e)
		}
	}
	return domain
}

func (d ValueDomain) IsTop() bool {
	return !d.bounded
}

// GetElements returns the elements of a finite domain, it panics if the domain is top.
func (d ValueDomain) GetElements() []value.Concrete {
	if !d.bounded {
		panic(ErrValueDomainIsTop)
	}
	return slices.Clone(d.elements)
}

// Size returns the number of elements, it panics if the domain is top.
func (d ValueDomain) Size() int {
	if !d.bounded {
		panic(ErrValueDomainIsTop)
	}
	return len(d.elements)
}

func (d ValueDomain) Contains(v value.Concrete) bool {
	if !d.bounded {
		return true
	}
	return slices.IndexFunc(d.elements, func(e value.Concrete) bool {
		return value.SameValue(e, v)
	}) >= 0
}

// Join returns the union of the two domains.
func (d ValueDomain) Join(other ValueDomain) ValueDomain {
	if !d.bounded || !other.bounded {
		return TOP_VALUE_DOMAIN
	}
	return NewValueDomain(append(slices.Clone(d.elements), other.elements...)...)
}

func (d ValueDomain) String() string {
	if !d.bounded {
		return "top"
	}
	parts := make([]string, len(d.elements))
	for i, e := range d.elements {
		parts[i] = value.Stringify(e)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
