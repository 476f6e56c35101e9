package server

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/lewis/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// solveQuery holds the query parameters of /api/solve.
type solveQuery struct {
	Formula      string `json:"formula" validate:"required,max=64"`
	Mode         string `json:"mode" validate:"omitempty,oneof=first all"`
	Limit        int    `json:"limit" validate:"gte=0,lte=1024"`
	MaxIonCharge int    `json:"max_ion" validate:"gte=0,lte=8"`
	Refresh      bool   `json:"refresh"`
}

// renderQuery holds the query parameters of /api/render/{format}.
type renderQuery struct {
	solveQuery
	Index    int     `json:"index" validate:"gte=0"`
	Size     float64 `json:"size" validate:"omitempty,gte=50,lte=4096"`
	Detailed bool    `json:"detailed"`
}

func parseSolveQuery(v url.Values) (solveQuery, error) {
	q := solveQuery{
		Formula: strings.TrimSpace(v.Get("formula")),
		Mode:    v.Get("mode"),
	}
	var err error
	if q.Limit, err = intParam(v, "limit"); err != nil {
		return q, err
	}
	if q.MaxIonCharge, err = intParam(v, "max_ion"); err != nil {
		return q, err
	}
	if q.Refresh, err = boolParam(v, "refresh"); err != nil {
		return q, err
	}
	return q, check(q)
}

func parseRenderQuery(v url.Values) (renderQuery, error) {
	sq, err := parseSolveQuery(v)
	if err != nil {
		return renderQuery{}, err
	}
	q := renderQuery{solveQuery: sq}
	if q.Index, err = intParam(v, "index"); err != nil {
		return q, err
	}
	if s := v.Get("size"); s != "" {
		if q.Size, err = strconv.ParseFloat(s, 64); err != nil {
			return q, errors.New(errors.ErrCodeInvalidInput, "size must be a number, got %q", s)
		}
	}
	if q.Detailed, err = boolParam(v, "detailed"); err != nil {
		return q, err
	}
	return q, check(q)
}

func intParam(v url.Values, name string) (int, error) {
	s := v.Get(name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be an integer, got %q", name, s)
	}
	return n, nil
}

func boolParam(v url.Values, name string) (bool, error) {
	s := v.Get(name)
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean, got %q", name, s)
	}
	return b, nil
}

// check runs struct validation and reports the first failing field.
func check(q any) error {
	err := validate.Struct(q)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid query")
	}
	return errors.New(errors.ErrCodeInvalidInput, "%s", fieldMessage(verrs[0]))
}

func fieldMessage(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(e.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
