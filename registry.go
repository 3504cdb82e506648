package fluri

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/cespare/xxhash"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// Registry is a set of named URL templates. It is safe for concurrent use.
//
// A template is a `Record`. Rendering a template builds the URL it describes
// after filling the "{name}" route parameters of the http(s) templates.
type Registry struct {
	// AppName is the name of the application that uses the registry.
	//
	// It's called "app_name" in the config file.
	AppName string

	// DebugMode indicates whether the registry is in debug mode, in which the
	// log lines are indented.
	//
	// It's called "debug_mode" in the config file.
	DebugMode bool

	// LoggerLowestLevel is the lowest level of the logger.
	//
	// It's called "logger_lowest_level" in the config file.
	LoggerLowestLevel LoggerLevel

	// LoggerOutput is the output of the logger. Nil disables the logger.
	LoggerOutput io.Writer

	// ConfigFile is the path of the config file. The supported extensions
	// are ".json", ".toml", ".yaml", ".yml" and ".ini".
	ConfigFile string

	// TemplateFile is the path of the template file. It maps template names
	// to records and supports the same extensions as the config file. In an
	// ".ini" file each section is a template.
	//
	// It's called "template_file" in the config file.
	TemplateFile string

	// TemplateWatch indicates whether the template file is reloaded when it
	// changes.
	//
	// It's called "template_watch" in the config file.
	TemplateWatch bool

	// CacheMaxBytes is the maximum size of the render cache. Zero disables
	// the cache.
	//
	// It's called "cache_max_bytes" in the config file.
	CacheMaxBytes int

	// NormalizeUnicode indicates whether the rendering parameters are
	// converted to the Unicode Normalization Form C.
	//
	// It's called "normalize_unicode" in the config file.
	NormalizeUnicode bool

	// IDNAHosts indicates whether the hosts are converted to their ASCII
	// (punycode) form when rendering.
	//
	// It's called "idna_hosts" in the config file.
	IDNAHosts bool

	logger     *logger
	mutex      *sync.RWMutex
	templates  map[string]Record
	generation uint64
	cache     *fastcache.Cache
	cacheOnce *sync.Once
	watcher   *fsnotify.Watcher
}

// NewRegistry returns a new instance of the `Registry` with default options.
func NewRegistry() *Registry {
	r := &Registry{
		AppName:           "fluri",
		LoggerLowestLevel: LoggerLevelInfo,
		LoggerOutput:      os.Stdout,
		CacheMaxBytes:     32 << 20,
		mutex:             &sync.RWMutex{},
		templates:         map[string]Record{},
		cacheOnce:         &sync.Once{},
	}
	r.logger = newLogger(r)

	return r
}

// Load loads the config file and then the template file of the r. Templates
// loaded from the file replace the ones registered before.
func (r *Registry) Load() error {
	if err := r.loadConfig(); err != nil {
		return err
	}

	if r.TemplateFile == "" {
		return nil
	}

	if err := r.loadTemplates(); err != nil {
		return err
	}

	if r.TemplateWatch {
		return r.watch()
	}

	return nil
}

// Register registers the rec as the template for the name.
func (r *Registry) Register(name string, rec Record) {
	r.mutex.Lock()
	r.templates[name] = rec
	r.generation++
	r.mutex.Unlock()

	r.resetCache()
}

// Template returns the template for the name.
func (r *Registry) Template(name string) (Record, bool) {
	rec, _, ok := r.template(name)
	return rec, ok
}

// template returns the template for the name along with the generation of the
// templates it belongs to.
func (r *Registry) template(name string) (Record, uint64, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	rec, ok := r.templates[name]

	return rec, r.generation, ok
}

// Names returns the sorted names of all templates of the r.
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Render builds the template for the name. Each of the params replaces the
// "{key}" route parameters of an http(s) template. Templates of the other
// schemes have no route parameters, so the params are ignored for them.
func (r *Registry) Render(
	name string,
	params map[string]string,
	encode bool,
) (string, error) {
	rec, gen, ok := r.template(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	return r.render(name, rec, gen, params, encode)
}

// render builds the rec, which is the template for the name in the generation
// gen. The result is cached under the gen even if the templates have been
// replaced meanwhile.
func (r *Registry) render(
	name string,
	rec Record,
	gen uint64,
	params map[string]string,
	encode bool,
) (string, error) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	c := r.renderCache()
	ck := r.renderCacheKey(name, gen, keys, params, encode)
	if c != nil {
		if b := c.Get(nil, ck); len(b) > 0 {
			r.logger.log(LoggerLevelDebug, "fluri: render cache hit", map[string]interface{}{
				"template": name,
			})

			return string(b), nil
		}
	}

	u, err := rec.URL()
	if err != nil {
		return "", err
	}

	if hu, ok := u.(*HTTPURL); ok {
		for _, k := range keys {
			v := params[k]
			if r.NormalizeUnicode {
				v = norm.NFC.String(v)
			}

			hu.SetRouteParam(k, v)
		}
	} else if len(params) > 0 {
		r.logger.log(LoggerLevelDebug, "fluri: params ignored", map[string]interface{}{
			"template": name,
			"scheme":   rec.Scheme,
		})
	}

	if r.IDNAHosts {
		if err := asciiHost(u); err != nil {
			return "", err
		}
	}

	s, err := u.Build(encode)
	if err != nil {
		return "", err
	}

	if c != nil {
		c.Set(ck, []byte(s))
	}

	return s, nil
}

// Close closes the template file watcher of the r, if any.
func (r *Registry) Close() error {
	r.mutex.Lock()
	w := r.watcher
	r.watcher = nil
	r.mutex.Unlock()

	if w == nil {
		return nil
	}

	return w.Close()
}

// loadTemplates loads the template file of the r.
func (r *Registry) loadTemplates() error {
	b, err := os.ReadFile(r.TemplateFile)
	if err != nil {
		return err
	}

	m, err := decodeMap(formatOfFile(r.TemplateFile), b)
	if err != nil {
		return err
	}

	ts := make(map[string]Record, len(m))
	for name, v := range m {
		switch v.(type) {
		case map[string]interface{}, map[interface{}]interface{}:
		default:
			continue
		}

		rec := Record{}
		if err := decode(v, &rec); err != nil {
			return fmt.Errorf(
				"fluri: failed to decode template %s: %w",
				name,
				err,
			)
		}

		ts[name] = rec
	}

	r.mutex.Lock()
	r.templates = ts
	r.generation++
	r.mutex.Unlock()

	r.resetCache()

	r.logger.log(LoggerLevelInfo, "fluri: templates loaded", map[string]interface{}{
		"template_file": r.TemplateFile,
		"templates":     len(ts),
	})

	return nil
}

// watch starts watching the template file of the r.
func (r *Registry) watch() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.watcher != nil {
		return nil
	}

	tf, err := filepath.Abs(r.TemplateFile)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := w.Add(filepath.Dir(tf)); err != nil {
		w.Close()
		return err
	}

	r.watcher = w

	go func() {
		for {
			select {
			case e, ok := <-w.Events:
				if !ok {
					return
				}

				if filepath.Clean(e.Name) != tf ||
					e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}

				r.logger.log(LoggerLevelDebug, "fluri: template file event occurs", map[string]interface{}{
					"file":  e.Name,
					"event": e.Op.String(),
				})

				if err := r.loadTemplates(); err != nil {
					r.logger.log(LoggerLevelError, "fluri: failed to reload templates", map[string]interface{}{
						"error": err.Error(),
					})
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}

				r.logger.log(LoggerLevelError, "fluri: template watcher error", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}()

	return nil
}

// renderCache returns the render cache of the r, or nil if it is disabled.
func (r *Registry) renderCache() *fastcache.Cache {
	r.cacheOnce.Do(func() {
		if r.CacheMaxBytes > 0 {
			r.cache = fastcache.New(r.CacheMaxBytes)
		}
	})

	return r.cache
}

// resetCache removes all entries of the render cache of the r.
func (r *Registry) resetCache() {
	if c := r.renderCache(); c != nil {
		c.Reset()
	}
}

// renderCacheKey returns the render cache key of a rendering of the template
// for the name in the generation gen.
func (r *Registry) renderCacheKey(
	name string,
	gen uint64,
	keys []string,
	params map[string]string,
	encode bool,
) []byte {
	b := strings.Builder{}
	b.WriteString(name)
	b.WriteByte(0)
	b.WriteString(strconv.FormatUint(gen, 10))
	for _, k := range keys {
		b.WriteByte(0)
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}

	b.WriteByte(0)
	for _, f := range []bool{encode, r.NormalizeUnicode, r.IDNAHosts} {
		if f {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}

	ck := make([]byte, 8)
	binary.BigEndian.PutUint64(ck, xxhash.Sum64String(b.String()))

	return ck
}

// asciiHost converts the host of the u to its ASCII form.
func asciiHost(u URL) error {
	switch u := u.(type) {
	case *HTTPURL:
		h, err := idna.ToASCII(u.host)
		if err != nil {
			return err
		}

		u.host = h
	case *FileURL:
		h, err := idna.ToASCII(u.host)
		if err != nil {
			return err
		}

		u.host = h
	case *TelnetURL:
		h, err := idna.ToASCII(u.host)
		if err != nil {
			return err
		}

		u.host = h
	}

	return nil
}
