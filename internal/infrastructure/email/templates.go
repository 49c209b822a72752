package email

import (
	"bytes"
	"fmt"
	"html/template"

	"storekit-backend/internal/domain"
)

type emailTemplate struct {
	subject *template.Template
	body    *template.Template
}

var funcs = template.FuncMap{
	"param": func(ps []string, i int) string {
		if i < 0 || i >= len(ps) {
			return ""
		}
		return ps[i]
	},
}

// Params are positional and match the WhatsApp template variables.
var templateSources = map[string][2]string{
	domain.TemplateOrderConfirmation: {
		`Order {{param .P 1}} confirmed`,
		`<p>Hi {{param .P 0}},</p><p>Thanks for your order <strong>{{param .P 1}}</strong>. Total: ₹{{param .P 2}}.</p>`,
	},
	domain.TemplateOrderShipped: {
		`Order {{param .P 1}} has shipped`,
		`<p>Hi {{param .P 0}},</p><p>Your order <strong>{{param .P 1}}</strong> is on its way with {{param .P 2}} (AWB {{param .P 3}}).</p>{{with param .P 4}}<p><a href="{{.}}">Track your shipment</a></p>{{end}}`,
	},
	domain.TemplateOrderDelivered: {
		`Order {{param .P 1}} delivered`,
		`<p>Hi {{param .P 0}},</p><p>Your order <strong>{{param .P 1}}</strong> has been delivered.</p>`,
	},
	domain.TemplateCODReminder: {
		`Keep ₹{{param .P 2}} ready for order {{param .P 1}}`,
		`<p>Hi {{param .P 0}},</p><p>Your cash on delivery order <strong>{{param .P 1}}</strong> arrives soon. Please keep ₹{{param .P 2}} ready.</p>`,
	},
	domain.TemplateAbandonedCart: {
		`You left {{param .P 1}} item(s) at {{param .P 0}}`,
		`<p>Your cart at {{param .P 0}} still has {{param .P 1}} item(s) worth ₹{{param .P 2}}.</p>{{with param .P 4}}<p>Use code <strong>{{.}}</strong> for {{param $.P 5}}% off.</p>{{end}}<p><a href="{{param .P 3}}">Complete your order</a></p>`,
	},
}

func parseTemplates() map[string]emailTemplate {
	out := make(map[string]emailTemplate, len(templateSources))
	for name, src := range templateSources {
		out[name] = emailTemplate{
			subject: template.Must(template.New(name + "_subject").Funcs(funcs).Parse(src[0])),
			body:    template.Must(template.New(name + "_body").Funcs(funcs).Parse(src[1])),
		}
	}
	return out
}

type renderData struct {
	P []string
}

func (t emailTemplate) render(params []string) (subject, html string, err error) {
	var sb, hb bytes.Buffer
	data := renderData{P: params}
	if err := t.subject.Execute(&sb, data); err != nil {
		return "", "", fmt.Errorf("render subject: %w", err)
	}
	if err := t.body.Execute(&hb, data); err != nil {
		return "", "", fmt.Errorf("render body: %w", err)
	}
	return sb.String(), hb.String(), nil
}
