package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"imageproxy/internal/fetcher"
	"imageproxy/internal/options"
	"imageproxy/internal/proxy"
	"imageproxy/internal/store/cache"
)

var errMalformedPath = errors.New("request path must be /{operations}/{source_url}")

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Image Proxy Worker"))
}

func (app *application) preflightHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Max-Age", "86400")
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) proxyImageHandler(w http.ResponseWriter, r *http.Request) {
	ops, sourceURL, err := splitProxyPath(r.URL)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.allowed.Allows(sourceURL) {
		app.forbiddenResponse(w, r, fmt.Errorf("source domain not allowed: %s", sourceURL))
		return
	}

	opts, err := options.Parse(ops, app.config.maxWidth, app.config.maxHeight)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()
	// the source URL carries the request's query string, so keying on
	// ops + source keeps query-distinct sources in distinct entries
	cacheKey := cache.Key(ops + "/" + sourceURL)

	if app.config.redisCfg.enabled {
		cached, err := app.cacheStorage.Responses.Get(ctx, cacheKey)
		if err != nil {
			app.logger.Warnw("cache lookup failed", "key", cacheKey, "error", err.Error())
		} else if cached != nil {
			app.writeImage(w, &proxy.Image{
				Body:         cached.Body,
				ContentType:  cached.ContentType,
				CacheControl: cached.CacheControl,
				ETag:         cached.ETag,
				LastModified: cached.LastModified,
			})
			return
		}
	}

	src, err := app.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		var upstreamErr *fetcher.UpstreamStatusError
		switch {
		case errors.As(err, &upstreamErr):
			app.upstreamErrorResponse(w, r, upstreamErr)
		case errors.Is(err, fetcher.ErrNotAnImage):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	img, httpErr := app.pipeline.Transform(src, opts, r.Header.Get("Accept"))
	if httpErr != nil {
		app.errorResponse(w, r, httpErr.Status, httpErr.Message)
		return
	}

	app.writeImage(w, img)

	if app.config.redisCfg.enabled {
		// fire and forget, the client never waits on the cache store
		go app.storeInCache(cacheKey, img)
	}
}

// splitProxyPath splits "/{operations}/{source_url}" into its two parts. The
// source URL keeps its own path segments and query string.
func splitProxyPath(u *url.URL) (string, string, error) {
	path := strings.TrimPrefix(u.Path, "/")

	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errMalformedPath
	}

	source := restoreSchemeSlashes(parts[1])
	if u.RawQuery != "" {
		source += "?" + u.RawQuery
	}

	return parts[0], source, nil
}

// restoreSchemeSlashes repairs "https:/host" back to "https://host". Proxies
// and path normalizers routinely collapse the double slash after the scheme.
func restoreSchemeSlashes(raw string) string {
	for _, scheme := range []string{"https", "http"} {
		prefix := scheme + ":/"
		if strings.HasPrefix(raw, prefix) && !strings.HasPrefix(raw, scheme+"://") {
			return scheme + "://" + strings.TrimPrefix(raw, prefix)
		}
	}

	return raw
}

func (app *application) writeImage(w http.ResponseWriter, img *proxy.Image) {
	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Cache-Control", img.CacheControl)
	w.Header().Set("ETag", img.ETag)
	w.Header().Set("Last-Modified", img.LastModified)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	w.Write(img.Body)
}

func (app *application) storeInCache(key string, img *proxy.Image) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res := &cache.CachedResponse{
		Body:         img.Body,
		ContentType:  img.ContentType,
		CacheControl: img.CacheControl,
		ETag:         img.ETag,
		LastModified: img.LastModified,
	}

	if err := app.cacheStorage.Responses.Set(ctx, key, res); err != nil {
		app.logger.Warnw("cache store failed", "key", key, "error", err.Error())
	}
}
