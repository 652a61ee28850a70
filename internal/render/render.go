package render

import (
	"bytes"
	"fmt"
	"html"
	"html/template"

	"github.com/sirupsen/logrus"

	"tcrlinks/internal/domain"
)

// Context is the per-request rendering input derived by the request
// adapter: where the page lives and where the app deep link points.
type Context struct {
	// BaseURL is the scheme+host origin of the current request.
	BaseURL string
	// PageURL is the canonical URL of this preview page.
	PageURL string
	// DeepLink is the custom-scheme URI opened by the controller script.
	DeepLink string
	// EmbedScript selects resolved mode: the redirect controller script is
	// emitted alongside the call-to-action anchor.
	EmbedScript bool
}

// Renderer turns a preview and a render context into a complete HTML
// document. All interpolated values pass through html/template's
// contextual escaping; the deep link is the only value exempted from URL
// filtering since its custom scheme is the whole point.
type Renderer struct {
	tmpl     *template.Template
	autoOpen bool
	log      logrus.FieldLogger
}

// New creates a renderer. autoOpen selects whether resolved pages try to
// open the app shortly after load or only on an explicit tap.
func New(autoOpen bool, logger logrus.FieldLogger) *Renderer {
	return &Renderer{
		tmpl:     template.Must(template.New("preview").Parse(previewTemplate)),
		autoOpen: autoOpen,
		log:      logger.WithField("component", "render"),
	}
}

type page struct {
	DocTitle    string
	MetaTitle   string
	PageURL     string
	Description string
	ImageURL    string
	DefaultImg  bool
	SiteName    string
	Locale      string
	Brand       string
	Title       string
	IsListing   bool
	Debug       string
	CTALabel    string
	HasCTA      bool
	DeepLink    template.URL
	DeepLinkJS  string
	EmbedScript bool
	AutoOpen    bool
	BotPattern  string
}

// Render produces the HTML document for a preview. A template failure
// degrades to a minimal static page rather than an error: crawlers must
// always get something to unfurl.
func (r *Renderer) Render(meta domain.Preview, rc Context) []byte {
	profile := meta.Kind.Profile()

	p := page{
		DocTitle:    fmt.Sprintf("%s | %s", meta.Title, profile.DocTitleSuffix),
		MetaTitle:   fmt.Sprintf("%s | %s", meta.Title, profile.MetaTitleSuffix),
		PageURL:     rc.PageURL,
		Description: meta.MetaDescription(),
		ImageURL:    meta.ImageURL,
		DefaultImg:  meta.IsDefaultImage,
		SiteName:    profile.SiteName,
		Locale:      "tr_TR",
		Brand:       profile.SiteName,
		Title:       meta.Title,
		IsListing:   meta.Kind == domain.KindListing,
		Debug:       meta.Debug,
		CTALabel:    profile.CTALabel,
		HasCTA:      rc.DeepLink != "",
		DeepLink:    template.URL(rc.DeepLink),
		DeepLinkJS:  rc.DeepLink,
		EmbedScript: rc.EmbedScript && rc.DeepLink != "",
		AutoOpen:    r.autoOpen,
		BotPattern:  BotPatternSource(),
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, p); err != nil {
		r.log.WithError(err).Error("Template execution failed, serving degraded page")
		return degradedPage(meta, profile)
	}
	return buf.Bytes()
}

// degradedPage is the best-effort document used when templating itself
// fails: brand, escaped title, nothing else.
func degradedPage(meta domain.Preview, profile domain.Profile) []byte {
	return []byte(fmt.Sprintf(
		"<!DOCTYPE html>\n<html lang=\"tr\"><head><meta charset=\"utf-8\" /><title>%s</title></head><body><p>%s</p><h1>%s</h1></body></html>",
		html.EscapeString(profile.SiteName),
		html.EscapeString(profile.SiteName),
		html.EscapeString(meta.Title),
	))
}

const previewTemplate = `<!DOCTYPE html>
<html lang="tr">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.DocTitle}}</title>
  <meta property="og:type" content="website" />
  <meta property="og:url" content="{{.PageURL}}" />
  <meta property="og:title" content="{{.MetaTitle}}" />
  <meta property="og:description" content="{{.Description}}" />
  <meta property="og:image" content="{{.ImageURL}}" />
  <meta property="og:image:secure_url" content="{{.ImageURL}}" />
  {{- if .DefaultImg}}
  <meta property="og:image:type" content="image/jpeg" />
  <meta property="og:image:width" content="512" />
  <meta property="og:image:height" content="512" />
  {{- end}}
  <meta property="og:site_name" content="{{.SiteName}}" />
  <meta property="og:locale" content="{{.Locale}}" />
  <meta name="twitter:card" content="summary_large_image" />
  <meta name="twitter:title" content="{{.MetaTitle}}" />
  <meta name="twitter:description" content="{{.Description}}" />
  <meta name="twitter:image" content="{{.ImageURL}}" />
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
      background: linear-gradient(135deg, #F5F7FA 0%, #E8ECF0 100%);
      min-height: 100vh;
      display: flex;
      align-items: center;
      justify-content: center;
      padding: 1rem;
      color: #1E3A5F;
    }
    .container {
      background: white;
      border-radius: 20px;
      box-shadow: 0 10px 40px rgba(30, 58, 95, 0.1);
      max-width: 420px;
      width: 100%;
      overflow: hidden;
      text-align: center;
    }
    .header {
      background: linear-gradient(135deg, #1E3A5F 0%, #3D5A80 100%);
      color: white;
      padding: 1.5rem 1rem;
    }
    .header-brand {
      font-size: 0.85rem;
      font-weight: 500;
      opacity: 0.9;
      letter-spacing: 0.5px;
    }
    .content {
      padding: 2rem 1.5rem;
    }
    .title {
      font-size: 1.5rem;
      font-weight: 600;
      color: #1E3A5F;
      margin-bottom: 1rem;
      line-height: 1.3;
    }
    .description {
      font-size: 1rem;
      color: #5C6B7A;
      line-height: 1.6;
      margin-bottom: 2rem;
    }
    .price {
      font-size: 1.75rem;
      font-weight: 700;
      color: #1E3A5F;
      margin-bottom: 2rem;
    }
    .btn {
      display: inline-block;
      background: linear-gradient(135deg, #1E3A5F 0%, #3D5A80 100%);
      color: white;
      padding: 0.875rem 2rem;
      text-decoration: none;
      border-radius: 12px;
      font-weight: 600;
      font-size: 1rem;
      transition: all 0.3s ease;
      box-shadow: 0 4px 12px rgba(30, 58, 95, 0.3);
    }
    .btn:hover {
      transform: translateY(-2px);
      box-shadow: 0 6px 16px rgba(30, 58, 95, 0.4);
    }
    .btn:active {
      transform: translateY(0);
    }
    .debug {
      background: #FFF3CD;
      border: 1px solid #FFC107;
      color: #856404;
      padding: 0.75rem;
      border-radius: 8px;
      font-size: 0.85rem;
      margin-top: 1rem;
      text-align: left;
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <div class="header-brand">{{.Brand}}</div>
    </div>
    <div class="content">
      <h1 class="title">{{.Title}}</h1>
      {{- if .IsListing}}
      <div class="price">{{.Description}}</div>
      {{- else}}
      <p class="description">{{.Description}}</p>
      {{- end}}
      {{- if .Debug}}
      <div class="debug">Debug: {{.Debug}}</div>
      {{- end}}
      {{- if .HasCTA}}
      <p><a href="{{.DeepLink}}" id="app-link" class="btn">{{.CTALabel}}</a></p>
      {{- end}}
    </div>
  </div>
  {{- if .EmbedScript}}
  <script>
    (function() {
      // Crawlers must keep seeing the static page: any redirect attempt
      // breaks their preview card.
      var ua = navigator.userAgent || '';
      var isBot = new RegExp({{.BotPattern}}, 'i').test(ua);
      if (isBot) {
        return;
      }

      var deepLink = {{.DeepLinkJS}};
      var appLink = document.getElementById('app-link');
      var clicked = false;
      var opened = false;

      function tryOpenApp() {
        if (opened) return;
        opened = true;
        window.location.href = deepLink;
        // No reliable signal for "app installed": after 2s without a tap,
        // restore the button so the user can retry manually.
        setTimeout(function() {
          if (!clicked) {
            appLink.style.opacity = '1';
          }
        }, 2000);
      }

      {{- if .AutoOpen}}
      // Short delay so the static preview paints before the handoff.
      setTimeout(tryOpenApp, 500);
      {{- end}}

      appLink.addEventListener('click', function(e) {
        e.preventDefault();
        clicked = true;
        tryOpenApp();
      });
    })();
  </script>
  {{- end}}
</body>
</html>
`
