package patterns

import "github.com/skosovsky/doccheck/internal/models"

// Normalized project stage values. Extraction maps the stamp's stage cell
// ("Р", "П", working/design documentation) onto these.
const (
	StageWorking = "working"
	StageDesign  = "design"
)

// Default returns the built-in pattern library. The tables carry both
// Russian (GOST/SPDS vocabulary) and English variants because source
// documents arrive in either language, OCR output included.
func Default() *Library {
	lib := &Library{
		Version: "2024.2",

		Roles: map[models.PageRole][]string{
			models.RoleTitle: {
				"титульный лист", "том ", "альбом", "заказчик",
				"генеральный директор", "главный инженер проекта",
				"title sheet", "cover sheet",
			},
			models.RoleGeneralData: {
				"общие данные", "общие указания",
				"ведомость рабочих чертежей", "ведомость чертежей",
				"general data", "general notes", "sheet index",
			},
			models.RoleDrawing: {
				"план", "разрез", "фасад", "схема расположения",
				"узел", "масштаб", "м 1:", "план на отм",
				"plan", "section a-a", "elevation", "scale 1:",
			},
			models.RoleSpec: {
				"спецификация", "ведомость материалов",
				"экспликация", "ведомость отделки",
				"specification", "bill of materials", "schedule of",
			},
			models.RoleDetails: {
				"узлы", "деталь", "узел 1", "детали крепления",
				"detail", "typical detail",
			},
		},

		GeneralData: []string{
			"общие данные",
			"ведомость рабочих чертежей основного комплекта",
			"ведомость рабочих чертежей",
			"общие указания",
			"general data",
			"general notes",
		},

		Stamp: []FieldPattern{
			{Name: "sheet_number", Expr: `лист\s*[№n]?\s*(\d+)`},
			{Name: "sheet_number", Expr: `sheet\s*(?:no\.?|№)?\s*(\d+)`},
			{Name: "revision", Expr: `изм\.?\s*[№n]?\s*(\d+)`},
			{Name: "revision", Expr: `rev(?:ision)?\.?\s*([a-zа-я0-9]{1,3})\b`},
			{Name: "scale", Expr: `(?:масштаб|м)\s*(1\s*:\s*\d+)`},
			{Name: "scale", Expr: `scale\s*(1\s*:\s*\d+)`},
			{Name: "project_code", Expr: `(\d{2,6}[-–]\d{2,4}(?:[-–][0-9а-яa-z]{1,6})*[-–][а-яa-z]{1,4}\d{0,2})`},
			// \b is ASCII-only in RE2, so the Cyrillic stage letter needs an
			// explicit right delimiter.
			{Name: "stage", Expr: `стадия\s*[:\s]\s*([пр])(?:[^0-9a-zа-яё]|$)`},
			{Name: "stage", Expr: `stage\s*[:\s]\s*(working|design|detailed|dd|wd)\b`},
			{Name: "object_name", Expr: `(?:объект|object)\s*[:\s]\s*([^\n]{5,120})`},
		},

		Project: []FieldPattern{
			{Name: "project_code", Expr: `(?:шифр|арх\.?\s*№|договор)\s*[:\s]\s*([0-9а-яa-z/.-]{4,40})`},
			{Name: "project_code", Expr: `(\d{2,6}[-–]\d{2,4}(?:[-–][0-9а-яa-z]{1,6})*[-–][а-яa-z]{1,4}\d{0,2})`},
			{Name: "project_name", Expr: `(?:наименование объекта|объект строительства|объект)\s*[:\s]\s*([^\n]{5,160})`},
			{Name: "stage", Expr: `(?:стадия|stage)\s*[:\s"«]*([пр]|working|design)(?:[^0-9a-zа-яё]|$)`},
			{Name: "stage", Expr: `(рабочая документация|проектная документация|working documentation|design documentation)`},
		},

		CodeKeywords: []string{"шифр", "арх. №", "договор №", "заказ №", "project no", "contract no"},

		Marks: map[string][]string{
			"АР":  {"архитектурн", "фасад", "отделк", "architectural"},
			"КР":  {"конструктивн", "конструкци", "structural"},
			"КЖ":  {"железобетон", "армирован", "reinforced concrete"},
			"КМ":  {"металлическ", "металлоконструкц", "steel structure"},
			"ОВ":  {"отоплен", "вентиляц", "воздухообмен", "hvac", "ventilation"},
			"ВК":  {"водоснабжен", "канализац", "water supply", "sewerage"},
			"ЭОМ": {"электроснабжен", "электрооборудован", "освещен", "electrical"},
			"ГП":  {"генеральный план", "генплан", "благоустройств", "site plan"},
			"ПЗ":  {"пояснительная записка", "explanatory note"},
		},

		Sections: map[models.SectionType][]string{
			models.SectionGeneralData: {
				"ведомость рабочих чертежей", "ведомость чертежей",
				"ведомость ссылочных и прилагаемых документов",
				"sheet index", "drawing list",
			},
			models.SectionSpec: {
				"поз.", "обозначение", "наименование", "кол.",
				"ед. изм", "масса", "item", "designation", "qty",
			},
		},

		Norms: map[string]MarkRules{
			"": {
				Working: []NormRef{
					{ID: "gost_21_101", Document: "ГОСТ Р 21.101", Keywords: []string{"гост р 21.101", "гост 21.101", "21.101"}},
				},
			},
			"АР": {
				Working: []NormRef{
					{ID: "gost_21_101", Document: "ГОСТ Р 21.101", Keywords: []string{"гост р 21.101", "21.101"}},
					{ID: "gost_21_501", Document: "ГОСТ 21.501", Keywords: []string{"гост 21.501", "21.501"}},
					{ID: "sp_118", Document: "СП 118.13330", Keywords: []string{"сп 118", "118.13330"}},
				},
			},
			"КР": {
				Working: []NormRef{
					{ID: "gost_21_101", Document: "ГОСТ Р 21.101", Keywords: []string{"гост р 21.101", "21.101"}},
					{ID: "gost_21_501", Document: "ГОСТ 21.501", Keywords: []string{"гост 21.501", "21.501"}},
					{ID: "sp_20", Document: "СП 20.13330", Keywords: []string{"сп 20", "20.13330"}},
				},
			},
			"КЖ": {
				Working: []NormRef{
					{ID: "gost_21_501", Document: "ГОСТ 21.501", Keywords: []string{"гост 21.501", "21.501"}},
					{ID: "sp_63", Document: "СП 63.13330", Keywords: []string{"сп 63", "63.13330"}},
				},
			},
			"ОВ": {
				Working: []NormRef{
					{ID: "gost_21_602", Document: "ГОСТ 21.602", Keywords: []string{"гост 21.602", "21.602"}},
					{ID: "sp_60", Document: "СП 60.13330", Keywords: []string{"сп 60", "60.13330"}},
				},
			},
			"ВК": {
				Working: []NormRef{
					{ID: "gost_21_601", Document: "ГОСТ 21.601", Keywords: []string{"гост 21.601", "21.601"}},
					{ID: "sp_30", Document: "СП 30.13330", Keywords: []string{"сп 30", "30.13330"}},
				},
			},
			"ЭОМ": {
				Working: []NormRef{
					{ID: "gost_21_608", Document: "ГОСТ 21.608", Keywords: []string{"гост 21.608", "21.608"}},
					{ID: "pue", Document: "ПУЭ", Keywords: []string{"пуэ"}},
				},
			},
		},
	}

	if err := lib.compile(); err != nil {
		// Built-in expressions are covered by tests; a compile failure here
		// is a programming defect.
		panic(err)
	}
	return lib
}
