package modules

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions lists the API modules. Nil modules are not mounted.
type RouterOptions struct {
	Signup Mountable
	Update Mountable
}

// Router mounts the API modules under their public prefixes.
//
//	r.Mount("/api", modules.Router(modules.RouterOptions{
//	    Signup: signup.New(subscribers, log),
//	    Update: update.New(cycle, log),
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	if opts.Signup != nil {
		r.Mount("/signup", opts.Signup.Handle())
	}
	if opts.Update != nil {
		r.Mount("/update", opts.Update.Handle())
	}
	return r
}
