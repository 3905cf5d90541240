// Package validation реализует декларативные наборы правил для проверки
// нормализованных тел анкет. Правила адресуют поля точечными путями,
// в том числе с подстановкой * для элементов массивов.
//
// Проверка не останавливается на первой ошибке: все нарушения собираются
// в один список, и до его опустошения никакие побочные эффекты не выполняются.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FieldError одно нарушение правила: имя поля и сообщение для клиента.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Check проверяет присутствующее значение поля. Пустая строка — успех.
type Check func(v any) string

// Rule правило для одного поля. Required содержит сообщение об отсутствии;
// пустой Required делает поле необязательным.
type Rule struct {
	Field    string
	Required string
	Checks   []Check
}

// Rules упорядоченный набор правил одной конечной точки.
type Rules []Rule

// Validate применяет все правила к телу и возвращает полный список нарушений.
func (rs Rules) Validate(body map[string]any) []FieldError {
	var errs []FieldError
	for _, rule := range rs {
		for _, m := range resolve(body, rule.Field) {
			if !m.found || isEmpty(m.value) {
				if rule.Required != "" {
					errs = append(errs, FieldError{Field: m.path, Message: rule.Required})
				}
				continue
			}
			for _, check := range rule.Checks {
				if msg := check(m.value); msg != "" {
					errs = append(errs, FieldError{Field: m.path, Message: msg})
				}
			}
		}
	}
	return errs
}

type match struct {
	path  string
	value any
	found bool
}

// resolve возвращает все значения по точечному пути. Сегмент * раскрывается
// по элементам массива; путь без совпадений при наличии * даёт пустой список,
// без * — одиночное "не найдено".
func resolve(body map[string]any, path string) []match {
	segs := strings.Split(path, ".")
	matches := []match{{path: "", value: any(body), found: true}}
	wildcard := false

	for _, seg := range segs {
		var next []match
		for _, m := range matches {
			if !m.found {
				next = append(next, match{path: joinPath(m.path, seg), found: false})
				continue
			}
			if seg == "*" {
				wildcard = true
				arr, ok := m.value.([]any)
				if !ok {
					continue
				}
				for i, item := range arr {
					next = append(next, match{path: joinPath(m.path, strconv.Itoa(i)), value: item, found: true})
				}
				continue
			}
			obj, ok := m.value.(map[string]any)
			if !ok {
				next = append(next, match{path: joinPath(m.path, seg), found: false})
				continue
			}
			v, ok := obj[seg]
			next = append(next, match{path: joinPath(m.path, seg), value: v, found: ok})
		}
		matches = next
	}

	if len(matches) == 0 && !wildcard {
		matches = []match{{path: path, found: false}}
	}
	return matches
}

func joinPath(base, seg string) string {
	if base == "" {
		return seg
	}
	return base + "." + seg
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// ---- Проверки ----

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Email проверяет адрес электронной почты.
func Email(msg string) Check {
	return func(v any) string {
		s, ok := v.(string)
		if !ok || !emailRe.MatchString(strings.TrimSpace(s)) {
			return msg
		}
		return ""
	}
}

// Pattern проверяет строку по регулярному выражению.
func Pattern(expr, msg string) Check {
	re := regexp.MustCompile(expr)
	return func(v any) string {
		s, ok := v.(string)
		if !ok || !re.MatchString(strings.TrimSpace(s)) {
			return msg
		}
		return ""
	}
}

// MinLen проверяет минимальную длину строки.
func MinLen(n int, msg string) Check {
	return func(v any) string {
		s, ok := v.(string)
		if !ok || len(strings.TrimSpace(s)) < n {
			return msg
		}
		return ""
	}
}

// IntRange проверяет, что значение — целое в диапазоне [min, max].
// Строковая форма числа допустима: формы присылают числа строками.
func IntRange(min, max int, msg string) Check {
	return func(v any) string {
		n, err := asInt(v)
		if err != nil || n < min || n > max {
			return msg
		}
		return ""
	}
}

func asInt(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case float64:
		return int(x), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(x))
	default:
		return 0, fmt.Errorf("not a number")
	}
}

// ArrayMin проверяет, что значение — массив длины не меньше n.
// Сырой текст на месте массива (например, непровалидировавшийся JSON)
// нарушает правило.
func ArrayMin(n int, msg string) Check {
	return func(v any) string {
		arr, ok := v.([]any)
		if !ok || len(arr) < n {
			return msg
		}
		return ""
	}
}

// IsDate проверяет, что значение — дата после приведения нормализатором.
func IsDate(msg string) Check {
	return func(v any) string {
		if _, ok := v.(time.Time); !ok {
			return msg
		}
		return ""
	}
}

// IsURL проверяет абсолютный URL.
func IsURL(msg string) Check {
	return func(v any) string {
		s, ok := v.(string)
		if !ok {
			return msg
		}
		u, err := url.Parse(strings.TrimSpace(s))
		if err != nil || u.Scheme == "" || u.Host == "" {
			return msg
		}
		return ""
	}
}

// IsString проверяет строковый тип.
func IsString(msg string) Check {
	return func(v any) string {
		if _, ok := v.(string); !ok {
			return msg
		}
		return ""
	}
}

// MustBeTrue проверяет булево согласие.
func MustBeTrue(msg string) Check {
	return func(v any) string {
		if b, ok := v.(bool); !ok || !b {
			return msg
		}
		return ""
	}
}

// notInFuture проверяет, что дата не позже текущего момента.
func notInFuture(msg string) Check {
	return func(v any) string {
		t, ok := v.(time.Time)
		if !ok || t.After(time.Now()) {
			return msg
		}
		return ""
	}
}
