package ioc

import (
	"fmt"
	"reflect"
	"sync"
)

// Key identifies a declared type. Two keys are equal only when they were
// derived from the same type, so distinct interfaces with identical method
// sets get distinct keys.
type Key struct {
	typ reflect.Type
}

var typeStringCache sync.Map

// KeyOf returns the key of the declared type T.
func KeyOf[T any]() Key {
	return Key{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

func (k Key) String() string {
	if k.typ == nil {
		return "<nil>"
	}
	if cached, ok := typeStringCache.Load(k.typ); ok {
		return cached.(string)
	}
	typeStr := k.typ.String()
	typeStringCache.Store(k.typ, typeStr)
	return typeStr
}

// token pairs a key with the check that tells whether a value satisfies the
// declared type.
type token struct {
	key      Key
	conforms func(v any) bool
}

func tokenOf[T any]() token {
	return token{
		key: KeyOf[T](),
		conforms: func(v any) bool {
			_, ok := v.(T)
			return ok
		},
	}
}

// staticallyNonConforming reports whether every value of static type I is
// known not to satisfy t. Interface-typed I may still hold a conforming
// value, so only concrete types are rejected here.
func (t token) staticallyNonConforming(i reflect.Type) bool {
	if i.Kind() == reflect.Interface {
		return false
	}
	return !i.AssignableTo(t.key.typ)
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", v)
}
