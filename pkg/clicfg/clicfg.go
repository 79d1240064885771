// Package clicfg copies urfave/cli flag values into a config struct via
// `flag:"..."` field tags, so services receive one typed struct instead of
// the cli.Command.
package clicfg

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/urfave/cli/v3"
)

var ErrCannotParseFlags = errors.New("cannot parse flags")

var durationType = reflect.TypeOf(time.Duration(0))

func ParseFlags(c *cli.Command, s any) error {
	v := reflect.ValueOf(s)
	if v.Kind() != reflect.Ptr {
		return fmt.Errorf("%w: expected pointer to struct, got %T", ErrCannotParseFlags, s)
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("%w: expected pointer to struct, got pointer to %s", ErrCannotParseFlags, v.Kind())
	}

	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		if !fieldValue.CanSet() {
			continue
		}

		flagName := field.Tag.Get("flag")
		if flagName == "" {
			continue
		}

		// time.Duration is an int64 underneath, check it before the kinds.
		if field.Type == durationType {
			fieldValue.SetInt(int64(c.Duration(flagName)))
			continue
		}

		switch field.Type.Kind() {
		case reflect.String:
			fieldValue.SetString(c.String(flagName))
		case reflect.Bool:
			fieldValue.SetBool(c.Bool(flagName))
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			intVal := c.Int(flagName)
			fieldValue.SetInt(int64(intVal))
		default:
			return fmt.Errorf("%w: unsupported field type %s for flag %s", ErrCannotParseFlags, field.Type, flagName)
		}
	}

	return nil
}
