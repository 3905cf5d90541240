// Package formdata нормализует плоские поля multipart/form-encoded запроса
// в структуру, ожидаемую валидаторами анкеты: массивы из индексированных
// ключей вида name[2].field, JSON-строки, булевы согласия, даты и вложенные
// объекты из ключей с точечной нотацией.
//
// Нормализатор сам по себе никогда не падает: некорректный JSON проглатывается
// и исходная строка передаётся дальше, чтобы точную ошибку сообщил валидатор.
package formdata

import (
	"encoding/json"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Известные составные поля анкеты.
var (
	scalarArrayFields = []string{"researchInterests"}
	objectArrayFields = []string{"previousExperience", "publicationDetails", "trainingDetails"}
	objectFields      = []string{"permanentAddress", "regulatoryDetails", "academicQualifications", "practiceDetails"}
	consentFields     = []string{"consent_infoTrueAndCorrect", "consent_authorizeDataUse", "consent_agreeToNotifications"}
)

var (
	reScalarIdx = regexp.MustCompile(`^(\w+)\[(\d+)\]$`)
	reObjectIdx = regexp.MustCompile(`^(\w+)\[(\d+)\]\.(\w+)$`)
	reNestedIdx = regexp.MustCompile(`^practiceDetails\.specializationAreas\[(\d+)\]$`)
	reDotted    = regexp.MustCompile(`^(\w+)\.(\w+)$`)
)

// Форматы дат, принимаемые от клиента.
var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01-02T15:04:05.000Z"}

// Normalize приводит плоское отображение полей формы к вложенной структуре.
// Значения с повторяющимися ключами сводятся к первому. Индексы массивов
// сортируются по возрастанию и уплотняются: пропуски в индексах не
// сохраняются, длина результата равна числу различных индексов.
func Normalize(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}

	for _, name := range scalarArrayFields {
		if arr := collectScalarArray(values, name); arr != nil {
			out[name] = arr
		}
	}
	for _, name := range objectArrayFields {
		if arr := collectObjectArray(values, name); arr != nil {
			out[name] = arr
		}
	}
	for _, name := range objectFields {
		if obj := collectObject(values, name); obj != nil {
			out[name] = obj
		}
	}

	if areas := collectSpecializationAreas(values); areas != nil {
		pd, ok := out["practiceDetails"].(map[string]any)
		if !ok {
			pd = map[string]any{}
			out["practiceDetails"] = pd
		}
		pd["specializationAreas"] = areas
	}

	for _, name := range consentFields {
		if v, ok := out[name]; ok {
			out[name] = toBool(v)
		}
	}

	coerceDates(out)
	return out
}

// maybeParseJSON пытается разобрать строку как JSON-массив или объект.
// Любая ошибка разбора проглатывается: возвращается исходное значение.
func maybeParseJSON(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return v
	}
	var parsed any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return v
	}
	return parsed
}

// collectScalarArray собирает массив скаляров по имени поля: сначала
// индексированные ключи name[i], затем плоский ключ с JSON-строкой или
// одиночным значением. Пустые строки и null отбрасываются.
func collectScalarArray(values url.Values, name string) []any {
	byIdx := map[int]any{}
	for k, vs := range values {
		m := reScalarIdx.FindStringSubmatch(k)
		if m == nil || m[1] != name || len(vs) == 0 {
			continue
		}
		idx, _ := strconv.Atoi(m[2])
		byIdx[idx] = vs[0]
	}
	arr := compact(byIdx)

	if vs, ok := values[name]; ok && len(vs) > 0 {
		switch v := maybeParseJSON(vs[0]).(type) {
		case []any:
			arr = v
		case string:
			if v != "" {
				arr = []any{v}
			}
		}
	}
	if len(arr) == 0 {
		return nil
	}
	return filterEmpty(arr)
}

// collectObjectArray собирает массив объектов: плоский ключ с JSON-массивом
// либо индексированные ключи name[i].field. Индексированная форма имеет
// приоритет. Записи-объекты от фильтрации пустых не страдают.
func collectObjectArray(values url.Values, name string) []any {
	var arr []any
	if vs, ok := values[name]; ok && len(vs) > 0 {
		if v, isArr := maybeParseJSON(vs[0]).([]any); isArr {
			arr = v
		}
	}

	byIdx := map[int]map[string]any{}
	for k, vs := range values {
		m := reObjectIdx.FindStringSubmatch(k)
		if m == nil || m[1] != name || len(vs) == 0 {
			continue
		}
		idx, _ := strconv.Atoi(m[2])
		entry, ok := byIdx[idx]
		if !ok {
			entry = map[string]any{}
			byIdx[idx] = entry
		}
		entry[m[3]] = vs[0]
	}
	if len(byIdx) > 0 {
		idxs := make([]int, 0, len(byIdx))
		for i := range byIdx {
			idxs = append(idxs, i)
		}
		sort.Ints(idxs)
		arr = make([]any, 0, len(idxs))
		for _, i := range idxs {
			arr = append(arr, byIdx[i])
		}
	}
	if len(arr) == 0 {
		return nil
	}
	return arr
}

// collectObject собирает вложенный объект: ключи с точечной нотацией
// name.field либо плоский ключ с JSON-строкой целого объекта.
func collectObject(values url.Values, name string) map[string]any {
	if vs, ok := values[name]; ok && len(vs) > 0 {
		if obj, isObj := maybeParseJSON(vs[0]).(map[string]any); isObj {
			return obj
		}
	}
	obj := map[string]any{}
	for k, vs := range values {
		m := reDotted.FindStringSubmatch(k)
		if m == nil || m[1] != name || len(vs) == 0 {
			continue
		}
		obj[m[2]] = vs[0]
	}
	if len(obj) == 0 {
		return nil
	}
	return obj
}

// collectSpecializationAreas обрабатывает единственный массив с вложенным
// именем: practiceDetails.specializationAreas.
func collectSpecializationAreas(values url.Values) []any {
	byIdx := map[int]any{}
	for k, vs := range values {
		m := reNestedIdx.FindStringSubmatch(k)
		if m == nil || len(vs) == 0 {
			continue
		}
		idx, _ := strconv.Atoi(m[1])
		byIdx[idx] = vs[0]
	}
	arr := compact(byIdx)

	if vs, ok := values["practiceDetails.specializationAreas"]; ok && len(vs) > 0 {
		if v, isArr := maybeParseJSON(vs[0]).([]any); isArr {
			arr = append(arr, v...)
		}
	}
	if len(arr) == 0 {
		return nil
	}
	return filterEmpty(arr)
}

// compact упорядочивает значения по возрастанию индексов и уплотняет
// разреженные индексы: индексы 0 и 2 дают последовательность из двух
// элементов, позиция пропуска не сохраняется.
func compact(byIdx map[int]any) []any {
	if len(byIdx) == 0 {
		return nil
	}
	idxs := make([]int, 0, len(byIdx))
	for i := range byIdx {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)
	arr := make([]any, 0, len(idxs))
	for _, i := range idxs {
		arr = append(arr, byIdx[i])
	}
	return arr
}

func filterEmpty(arr []any) []any {
	out := make([]any, 0, len(arr))
	for _, v := range arr {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// toBool приводит строковые формы согласий к булеву значению.
// Истинными считаются "true", "on" и "1" без учёта регистра, всё прочее — false.
func toBool(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	s := strings.ToLower(strings.TrimSpace(toString(v)))
	return s == "true" || s == "on" || s == "1"
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(raw)
}

// toDate преобразует строковое значение даты в time.Time. Нестроковые
// значения проходят без изменений; нераспознанная строка сохраняется как
// есть, чтобы валидатор сообщил точную ошибку поля.
func toDate(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return v
}

// coerceDates применяет приведение дат к фиксированному списку полей:
// дата рождения, регуляторные даты и даты начала/окончания внутри записей
// опыта и обучения.
func coerceDates(out map[string]any) {
	if v, ok := out["dateOfBirth"]; ok {
		out["dateOfBirth"] = toDate(v)
	}

	if rd, ok := out["regulatoryDetails"].(map[string]any); ok {
		for _, f := range []string{"registrationDate", "regulatoryValidityUntil"} {
			if v, ok := rd[f]; ok {
				rd[f] = toDate(v)
			}
		}
	}

	coerceEntryDates(out, "previousExperience", "startDate", "endDate")
	coerceEntryDates(out, "trainingDetails", "trainingStartDate", "trainingEndDate")
}

func coerceEntryDates(out map[string]any, name string, fields ...string) {
	arr, ok := out[name].([]any)
	if !ok {
		return
	}
	for _, item := range arr {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for _, f := range fields {
			if v, ok := entry[f]; ok {
				entry[f] = toDate(v)
			}
		}
	}
}
