package api

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/dgallion1/batnadoc/internal/form"
	"github.com/dgallion1/batnadoc/internal/history"
	"github.com/dgallion1/batnadoc/internal/render"
	"github.com/go-chi/chi/v5"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/page.html"))

type fieldView struct {
	Key, Title, Help, Value string
}

type inputView struct {
	Label, Value string
}

type pageData struct {
	Fields   []fieldView
	Current  *history.Entry
	Inputs   []inputView
	Document template.HTML
	History  []history.Entry
	Busy     bool
	Error    string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, "")
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, code int, msg string) {
	v := sessionFrom(r).Snapshot()

	data := pageData{
		Current: v.Current,
		History: v.History,
		Busy:    v.Busy,
		Error:   msg,
	}
	for _, f := range form.Fields {
		data.Fields = append(data.Fields, fieldView{Key: f.Key, Title: f.Title, Help: f.Help, Value: v.Form[f.Key]})
	}
	if v.Current != nil {
		for _, f := range form.Fields {
			if val, ok := v.Current.Input[f.Key]; ok {
				data.Inputs = append(data.Inputs, inputView{Label: form.Label(f.Key), Value: val})
			}
		}
		doc, err := render.Markdown(v.Current.Document)
		if err != nil {
			s.log.Error("render document", "session_id", v.ID, "error", err)
			http.Error(w, "failed to render document", http.StatusInternalServerError)
			return
		}
		data.Document = doc
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := pageTmpl.Execute(w, data); err != nil {
		s.log.Error("execute page template", "error", err)
	}
}

func (s *Server) handlePageGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	values := make(map[string]string, len(form.Fields))
	for _, f := range form.Fields {
		values[f.Key] = r.PostForm.Get(f.Key)
	}

	if _, err := s.ctrl.Submit(r.Context(), sessionFrom(r), values); err != nil {
		msg := err.Error()
		if errors.Is(err, form.ErrIncompleteInput) {
			msg = "Please fill in all fields before generating the BATNA document."
		}
		s.renderPage(w, r, statusFor(err), msg)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePageNew(w http.ResponseWriter, r *http.Request) {
	s.ctrl.NewDocument(sessionFrom(r))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePageClearFields(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r).ClearForm()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePageView(w http.ResponseWriter, r *http.Request) {
	if _, err := s.ctrl.View(sessionFrom(r), chi.URLParam(r, "id")); err != nil {
		s.renderPage(w, r, statusFor(err), err.Error())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePageDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.ctrl.Remove(sessionFrom(r), chi.URLParam(r, "id")); err != nil {
		s.renderPage(w, r, statusFor(err), err.Error())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePageClearHistory(w http.ResponseWriter, r *http.Request) {
	s.ctrl.Clear(sessionFrom(r))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
