package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/diewo77/car-rental/view"
)

// Flash is a one-shot notice carried in a cookie across the PRG redirect.
// Category maps onto a Bootstrap alert style (success, danger, info, warning).
type Flash struct {
	Category string
	Message  string
}

func SetFlash(w http.ResponseWriter, category, message string) {
	http.SetCookie(w, &http.Cookie{Name: "flash", Value: url.QueryEscape(category + "|" + message), Path: "/"})
}

// PopFlash reads and clears the flash cookie.
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie("flash")
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: "flash", Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
	dec, derr := url.QueryUnescape(c.Value)
	if derr != nil {
		dec = c.Value
	}
	if cat, msg, ok := strings.Cut(dec, "|"); ok {
		return &Flash{Category: cat, Message: msg}
	}
	return &Flash{Category: "info", Message: dec}
}

// render executes the named template, absorbing the pending flash into data.
func render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Flash"]; !exists {
		if f := PopFlash(w, r); f != nil {
			data["Flash"] = f
		}
	}
	if err := view.Render(w, r, name, data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte("template render error: " + err.Error())); werr != nil {
			_ = werr
		}
	}
}
