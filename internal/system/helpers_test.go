package system

import "reflect"

func byteArray(n int) reflect.Type {
	return reflect.ArrayOf(n, reflect.TypeFor[byte]())
}
