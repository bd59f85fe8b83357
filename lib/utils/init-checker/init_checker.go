package initchecker

import (
	"fmt"
	"reflect"
)

// CheckInit паника при незаданной зависимости, аргументы парами: имя, значение.
// Интерфейс с nil-указателем внутри тоже считается незаданным.
func CheckInit(pairs ...any) {
	if len(pairs)%2 != 0 {
		panic("CheckInit: нечетное количество аргументов")
	}
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("CheckInit: аргумент %d должен быть именем зависимости", i))
		}
		if isNil(pairs[i+1]) {
			panic(fmt.Sprintf("зависимость %s не инициализирована", name))
		}
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
