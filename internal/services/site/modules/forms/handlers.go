package forms

import (
	"net/http"

	"github.com/kakascoaching/site/internal/leads"
	apperrors "github.com/kakascoaching/site/internal/platform/errors"
	module "github.com/kakascoaching/site/internal/services/site/module"
	"github.com/kakascoaching/site/internal/services/site/platform/flash"
	"github.com/kakascoaching/site/internal/services/site/platform/httpx"
	sitei18n "github.com/kakascoaching/site/internal/services/site/platform/i18n"
	"github.com/kakascoaching/site/internal/services/site/platform/pagerender"
	"github.com/kakascoaching/site/internal/services/site/platform/requestmeta"
	"github.com/kakascoaching/site/internal/services/site/platform/weberror"
	"github.com/kakascoaching/site/internal/services/site/routepath"
	"github.com/kakascoaching/site/internal/services/site/templates"
)

const relayNotConfiguredMessage = "lead relay is not configured"

type handlers struct {
	deps module.Dependencies
	page page
}

func newHandlers(deps module.Dependencies, p page) handlers {
	return handlers{deps: deps, page: p}
}

// formState is the request-specific part of a form render.
type formState struct {
	values   map[string]string
	errors   leads.FieldErrors
	alertKey string
	notice   *flash.Notice
}

func (h handlers) handleShow(w http.ResponseWriter, r *http.Request) {
	state := formState{}
	var toast *flash.Notice
	if notice, ok := flash.ReadAndClearWithPolicy(w, r, h.deps.SchemePolicy); ok {
		if notice.Form == h.page.form.ID {
			state.notice = &notice
		} else {
			toast = &notice
		}
	}
	h.render(w, r, http.StatusOK, state, toast)
}

func (h handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if !requestmeta.HasSameOriginProofWithPolicy(r, h.deps.SchemePolicy) {
		weberror.WriteModuleError(w, r, apperrors.EK(apperrors.KindForbidden, "errors.forbidden", "missing same-origin proof"), h.deps)
		return
	}
	if err := r.ParseForm(); err != nil {
		weberror.WriteModuleError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "errors.generic", "parse form", err), h.deps)
		return
	}

	if h.page.saveKey != "" && r.PostForm.Get(routepath.FormActionParam) == routepath.FormActionSaveForLater {
		flash.WriteWithPolicy(w, r, flash.NoticeInfo(h.page.savedKey).For(h.page.form.ID), h.deps.SchemePolicy)
		httpx.WriteRedirect(w, r, h.page.path)
		return
	}

	values := make(map[string]string, len(h.page.form.Fields))
	for _, field := range h.page.form.Fields {
		values[field.Name] = r.PostForm.Get(field.Name)
	}

	err := h.submit(r, values)
	if err == nil {
		flash.WriteWithPolicy(w, r, flash.NoticeSuccess(h.page.successKey).For(h.page.form.ID), h.deps.SchemePolicy)
		httpx.WriteRedirect(w, r, h.page.path)
		return
	}

	state := formState{alertKey: apperrors.LocalizationKey(err)}
	if fieldErrs, ok := leads.FieldErrorsOf(err); ok {
		state.values = values
		state.errors = fieldErrs
	} else if h.page.form.KeepOnFailure {
		state.values = values
	}
	if state.alertKey == "" {
		state.alertKey = leads.KeyRetry
	}
	h.render(w, r, apperrors.HTTPStatus(err), state, nil)
}

func (h handlers) submit(r *http.Request, values map[string]string) error {
	if h.deps.Leads == nil {
		err := apperrors.Wrap(apperrors.KindUnavailable, leads.KeyRetry, leads.RetryMessage, apperrors.E(apperrors.KindUnavailable, relayNotConfiguredMessage))
		h.deps.Logf("lead submit skipped form=%s err=%v", h.page.form.ID, err)
		return err
	}
	_, err := h.deps.Leads.Submit(httpx.RequestContext(r), h.page.form, values)
	return err
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
}

func (h handlers) render(w http.ResponseWriter, r *http.Request, status int, state formState, toast *flash.Notice) {
	heading := h.page.heading(h.deps.Catalog().Site)
	err := pagerender.WriteLocalizedPage(w, r, h.deps, func(loc sitei18n.Localizer) pagerender.ModulePage {
		view := templates.FormView{
			Form:       h.page.form,
			Action:     h.page.path,
			Values:     state.values,
			Errors:     state.errors,
			SubmitKey:  h.page.submitKey,
			SaveKey:    h.page.saveKey,
			AnotherKey: h.page.anotherKey,
			Loc:        loc,
		}
		if state.alertKey != "" {
			view.Alert = loc.Sprintf(state.alertKey)
		}
		if state.notice != nil {
			switch state.notice.Kind {
			case flash.KindSuccess:
				view.Success = loc.Sprintf(state.notice.Key)
			default:
				view.Notice = loc.Sprintf(state.notice.Key)
			}
		}
		return pagerender.ModulePage{
			Title:         loc.Sprintf(h.page.titleKey),
			StatusCode:    status,
			Fragment:      h.page.render(heading, view),
			Toast:         toast,
			FlashConsumed: true,
		}
	})
	if err != nil {
		h.deps.Logf("form render failed form=%s request_id=%s err=%v", h.page.form.ID, httpx.RequestIDFrom(r), err)
	}
}
