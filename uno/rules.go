package uno

import (
	"regexp"
	"strings"
)

// Built-in static rules. User rules from the config overlay these.
var builtinRules = map[string]string{
	"block":        "display: block",
	"inline-block": "display: inline-block",
	"inline":       "display: inline",
	"flex":         "display: flex",
	"grid":         "display: grid",
	"hidden":       "display: none",

	"flex-row":        "flex-direction: row",
	"flex-col":        "flex-direction: column",
	"flex-wrap":       "flex-wrap: wrap",
	"flex-1":          "flex: 1 1 0%",
	"items-start":     "align-items: flex-start",
	"items-center":    "align-items: center",
	"items-end":       "align-items: flex-end",
	"justify-start":   "justify-content: flex-start",
	"justify-center":  "justify-content: center",
	"justify-between": "justify-content: space-between",
	"justify-end":     "justify-content: flex-end",

	"relative": "position: relative",
	"absolute": "position: absolute",
	"fixed":    "position: fixed",
	"sticky":   "position: sticky",

	"font-normal": "font-weight: 400",
	"font-medium": "font-weight: 500",
	"font-bold":   "font-weight: 700",
	"italic":      "font-style: italic",
	"underline":   "text-decoration-line: underline",
	"uppercase":   "text-transform: uppercase",
	"text-left":   "text-align: left",
	"text-center": "text-align: center",
	"text-right":  "text-align: right",

	"rounded":      "border-radius: 0.25rem",
	"rounded-lg":   "border-radius: 0.5rem",
	"rounded-full": "border-radius: 9999px",
	"border":       "border-width: 1px",
	"shadow":       "box-shadow: 0 1px 3px 0 rgb(0 0 0 / 0.1)",

	"overflow-hidden": "overflow: hidden",
	"truncate":        "overflow: hidden; text-overflow: ellipsis; white-space: nowrap",
	"cursor-pointer":  "cursor: pointer",
}

// Built-in variants. The key is the token prefix without the colon.
var builtinVariants = map[string]Variant{
	"hover":    {Selector: "&:hover"},
	"focus":    {Selector: "&:focus"},
	"active":   {Selector: "&:active"},
	"disabled": {Selector: "&:disabled"},
	"first":    {Selector: "&:first-child"},
	"last":     {Selector: "&:last-child"},
	"dark":     {Selector: ".dark &"},
	"sm":       {AtRule: "@media (min-width: 640px)"},
	"md":       {AtRule: "@media (min-width: 768px)"},
	"lg":       {AtRule: "@media (min-width: 1024px)"},
}

func defaultSpacing() map[string]string {
	return map[string]string{
		"0": "0", "1": "0.25rem", "2": "0.5rem", "3": "0.75rem",
		"4": "1rem", "5": "1.25rem", "6": "1.5rem", "8": "2rem",
		"10": "2.5rem", "12": "3rem", "16": "4rem", "24": "6rem",
	}
}

func defaultColors() map[string]string {
	return map[string]string{
		"black": "#000", "white": "#fff", "gray": "#6b7280",
		"red": "#ef4444", "green": "#22c55e", "blue": "#3b82f6",
		"yellow": "#eab308",
	}
}

func defaultFontSizes() map[string]string {
	return map[string]string{
		"xs": "0.75rem", "sm": "0.875rem", "base": "1rem",
		"lg": "1.125rem", "xl": "1.25rem", "2xl": "1.5rem",
	}
}

var (
	spacingRE = regexp.MustCompile(`^(-?)([mp])([trblxy])?-(.+)$`)
	sizeRE    = regexp.MustCompile(`^([wh])-(.+)$`)
	gapRE     = regexp.MustCompile(`^gap-(.+)$`)
	textRE    = regexp.MustCompile(`^text-(.+)$`)
	bgRE      = regexp.MustCompile(`^bg-(.+)$`)
)

var spacingSides = map[string][]string{
	"":  {""},
	"t": {"-top"},
	"r": {"-right"},
	"b": {"-bottom"},
	"l": {"-left"},
	"x": {"-left", "-right"},
	"y": {"-top", "-bottom"},
}

// matchDynamic resolves parameterized utilities against the theme scales:
// margin/padding (m-4, px-2, -mt-1), sizes (w-full, h-8), gap, font sizes
// and text colors (text-lg, text-red), backgrounds (bg-blue). Arbitrary
// values in brackets (m-[10px]) pass through as-is.
func (g *Generator) matchDynamic(base string) (string, bool) {
	if m := spacingRE.FindStringSubmatch(base); m != nil {
		val, ok := g.themeValue(g.cfg.Theme.Spacing, m[4])
		if !ok {
			return "", false
		}
		if m[1] == "-" && val != "0" {
			val = "-" + val
		}
		prop := "margin"
		if m[2] == "p" {
			prop = "padding"
		}
		var decls []string
		for _, side := range spacingSides[m[3]] {
			decls = append(decls, prop+side+": "+val)
		}
		return strings.Join(decls, "; "), true
	}

	if m := sizeRE.FindStringSubmatch(base); m != nil {
		prop := "width"
		if m[1] == "h" {
			prop = "height"
		}
		switch m[2] {
		case "full":
			return prop + ": 100%", true
		case "screen":
			if m[1] == "w" {
				return "width: 100vw", true
			}
			return "height: 100vh", true
		}
		if val, ok := g.themeValue(g.cfg.Theme.Spacing, m[2]); ok {
			return prop + ": " + val, true
		}
		return "", false
	}

	if m := gapRE.FindStringSubmatch(base); m != nil {
		if val, ok := g.themeValue(g.cfg.Theme.Spacing, m[1]); ok {
			return "gap: " + val, true
		}
		return "", false
	}

	if m := textRE.FindStringSubmatch(base); m != nil {
		if val, ok := g.cfg.Theme.FontSizes[m[1]]; ok {
			return "font-size: " + val, true
		}
		if val, ok := g.themeValue(g.cfg.Theme.Colors, m[1]); ok {
			return "color: " + val, true
		}
		return "", false
	}

	if m := bgRE.FindStringSubmatch(base); m != nil {
		if val, ok := g.themeValue(g.cfg.Theme.Colors, m[1]); ok {
			return "background-color: " + val, true
		}
		return "", false
	}

	return "", false
}

// themeValue resolves raw against a theme scale, letting bracketed
// arbitrary values ("[10px]") bypass the scale.
func (g *Generator) themeValue(scale map[string]string, raw string) (string, bool) {
	if len(raw) > 2 && raw[0] == '[' && raw[len(raw)-1] == ']' {
		return raw[1 : len(raw)-1], true
	}
	val, ok := scale[raw]
	return val, ok
}
