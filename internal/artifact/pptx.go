package artifact

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"text/template"
	"time"
)

// EMU geometry for a 4:3 slide.
const (
	slideWidth  = 9144000
	slideHeight = 6858000
	marginX     = 457200
	contentW    = slideWidth - 2*marginX
)

const (
	nsA       = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"`
	nsR       = `xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`
	nsP       = `xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`
	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
)

// Every run in the deck is 9pt: sz="900" (hundredths of a point).
var pptxTemplates = template.Must(template.New("pptx").Funcs(template.FuncMap{
	"esc": escapeXML,
	"add": func(a, b int) int { return a + b },
}).Parse(`
{{define "content_types"}}<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/><Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/><Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/><Override PartName="/ppt/slideLayouts/slideLayout2.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/><Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>{{range $i, $_ := .}}<Override PartName="/ppt/slides/slide{{add $i 1}}.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>{{end}}<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/><Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/></Types>{{end}}

{{define "presentation"}}<p:presentation ` + nsA + ` ` + nsR + ` ` + nsP + `><p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst><p:sldIdLst>{{range $i, $_ := .}}<p:sldId id="{{add $i 256}}" r:id="rId{{add $i 3}}"/>{{end}}</p:sldIdLst><p:sldSz cx="9144000" cy="6858000" type="screen4x3"/><p:notesSz cx="6858000" cy="9144000"/></p:presentation>{{end}}

{{define "presentation_rels"}}<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="theme/theme1.xml"/>{{range $i, $_ := .}}<Relationship Id="rId{{add $i 3}}" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide{{add $i 1}}.xml"/>{{end}}</Relationships>{{end}}

{{define "slide_rels"}}<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout{{.}}.xml"/></Relationships>{{end}}

{{define "core"}}<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"><dc:title>{{esc .Title}}</dc:title><dc:creator>voicedesk</dc:creator><dcterms:created xsi:type="dcterms:W3CDTF">{{.Created}}</dcterms:created></cp:coreProperties>{{end}}

{{define "app"}}<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"><Application>voicedesk</Application><Slides>{{.}}</Slides></Properties>{{end}}

{{define "shape"}}<p:sp><p:nvSpPr><p:cNvPr id="{{.ID}}" name="{{.Name}}"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr><p:spPr><a:xfrm><a:off x="{{.X}}" y="{{.Y}}"/><a:ext cx="{{.W}}" cy="{{.H}}"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr><p:txBody><a:bodyPr wrap="square"/><a:lstStyle/>{{range .Paragraphs}}<a:p>{{if .Bullet}}<a:pPr marL="171450" indent="-171450"><a:spcAft><a:spcPts val="900"/></a:spcAft><a:buChar char="&#8226;"/></a:pPr>{{end}}<a:r><a:rPr lang="en-US" sz="900"{{if .Bold}} b="1"{{end}}/><a:t>{{esc .Text}}</a:t></a:r></a:p>{{end}}</p:txBody></p:sp>{{end}}

{{define "slide"}}<p:sld ` + nsA + ` ` + nsR + ` ` + nsP + `><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>{{range .}}{{template "shape" .}}{{end}}</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>{{end}}
`))

const rootRels = `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/><Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/></Relationships>`

const emptyTree = `<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/></p:spTree>`

const slideMaster = `<p:sldMaster ` + nsA + ` ` + nsR + ` ` + nsP + `><p:cSld>` + emptyTree + `</p:cSld><p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/><p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/><p:sldLayoutId id="2147483650" r:id="rId2"/></p:sldLayoutIdLst></p:sldMaster>`

const slideMasterRels = `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout2.xml"/><Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/></Relationships>`

const layoutRels = `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/></Relationships>`

func slideLayout(kind, name string) string {
	return `<p:sldLayout ` + nsA + ` ` + nsR + ` ` + nsP + ` type="` + kind + `" preserve="1"><p:cSld name="` + name + `">` + emptyTree + `</p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`
}

const theme = `<a:theme ` + nsA + ` name="voicedesk"><a:themeElements><a:clrScheme name="voicedesk"><a:dk1><a:srgbClr val="000000"/></a:dk1><a:lt1><a:srgbClr val="FFFFFF"/></a:lt1><a:dk2><a:srgbClr val="1F497D"/></a:dk2><a:lt2><a:srgbClr val="EEECE1"/></a:lt2><a:accent1><a:srgbClr val="4F81BD"/></a:accent1><a:accent2><a:srgbClr val="C0504D"/></a:accent2><a:accent3><a:srgbClr val="9BBB59"/></a:accent3><a:accent4><a:srgbClr val="8064A2"/></a:accent4><a:accent5><a:srgbClr val="4BACC6"/></a:accent5><a:accent6><a:srgbClr val="F79646"/></a:accent6><a:hlink><a:srgbClr val="0000FF"/></a:hlink><a:folHlink><a:srgbClr val="800080"/></a:folHlink></a:clrScheme><a:fontScheme name="voicedesk"><a:majorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont><a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont></a:fontScheme><a:fmtScheme name="voicedesk"><a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst><a:lnStyleLst><a:ln w="9525"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="25400"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="38100"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst><a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst><a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst></a:fmtScheme></a:themeElements></a:theme>`

type paragraph struct {
	Text   string
	Bold   bool
	Bullet bool
}

type shape struct {
	ID, Name   string
	X, Y, W, H int
	Paragraphs []paragraph
}

type slidePart struct {
	layout int
	shapes []shape
}

// WritePPTX writes deck as a PowerPoint file at path: one title slide plus
// one slide per deck.Slides entry, in order.
func WritePPTX(path string, deck Deck) error {
	data, err := renderPPTX(deck, time.Now().UTC())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write pptx: %w", err)
	}
	return nil
}

func renderPPTX(deck Deck, created time.Time) ([]byte, error) {
	slides := deckSlides(deck)

	parts := []struct {
		name string
		body func() (string, error)
	}{
		{"[Content_Types].xml", execFn("content_types", slides)},
		{"_rels/.rels", constFn(rootRels)},
		{"docProps/core.xml", execFn("core", map[string]string{"Title": deck.Title, "Created": created.Format(time.RFC3339)})},
		{"docProps/app.xml", execFn("app", len(slides))},
		{"ppt/presentation.xml", execFn("presentation", slides)},
		{"ppt/_rels/presentation.xml.rels", execFn("presentation_rels", slides)},
		{"ppt/slideMasters/slideMaster1.xml", constFn(slideMaster)},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", constFn(slideMasterRels)},
		{"ppt/slideLayouts/slideLayout1.xml", constFn(slideLayout("title", "Title Slide"))},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", constFn(layoutRels)},
		{"ppt/slideLayouts/slideLayout2.xml", constFn(slideLayout("obj", "Title and Content"))},
		{"ppt/slideLayouts/_rels/slideLayout2.xml.rels", constFn(layoutRels)},
		{"ppt/theme/theme1.xml", constFn(theme)},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	write := func(name, body string) error {
		f, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("pptx part %s: %w", name, err)
		}
		_, err = f.Write([]byte(xmlHeader + body))
		return err
	}

	for _, part := range parts {
		body, err := part.body()
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", part.name, err)
		}
		if err := write(part.name, body); err != nil {
			return nil, err
		}
	}

	for i, s := range slides {
		body, err := execFn("slide", s.shapes)()
		if err != nil {
			return nil, fmt.Errorf("render slide %d: %w", i+1, err)
		}
		if err := write(fmt.Sprintf("ppt/slides/slide%d.xml", i+1), body); err != nil {
			return nil, err
		}
		rels, err := execFn("slide_rels", s.layout)()
		if err != nil {
			return nil, err
		}
		if err := write(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), rels); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close pptx: %w", err)
	}
	return buf.Bytes(), nil
}

func deckSlides(deck Deck) []slidePart {
	slides := []slidePart{{
		layout: 1,
		shapes: []shape{
			{ID: "2", Name: "Title", X: marginX, Y: 2130425, W: contentW, H: 1470025,
				Paragraphs: []paragraph{{Text: deck.Title, Bold: true}}},
			{ID: "3", Name: "Subtitle", X: marginX, Y: 3886200, W: contentW, H: 1752600,
				Paragraphs: []paragraph{{Text: deck.Subtitle}}},
		},
	}}

	for _, s := range deck.Slides {
		body := make([]paragraph, 0, len(s.Bullets))
		for _, b := range s.Bullets {
			body = append(body, paragraph{Text: b, Bullet: true})
		}
		if len(body) == 0 {
			body = append(body, paragraph{})
		}
		slides = append(slides, slidePart{
			layout: 2,
			shapes: []shape{
				{ID: "2", Name: "Title", X: marginX, Y: 274638, W: contentW, H: 1143000,
					Paragraphs: []paragraph{{Text: s.Heading, Bold: true}}},
				{ID: "3", Name: "Content", X: marginX, Y: 1600200, W: contentW, H: 4525963,
					Paragraphs: body},
			},
		})
	}
	return slides
}

func execFn(name string, data any) func() (string, error) {
	return func() (string, error) {
		var b bytes.Buffer
		if err := pptxTemplates.ExecuteTemplate(&b, name, data); err != nil {
			return "", err
		}
		return b.String(), nil
	}
}

func constFn(s string) func() (string, error) {
	return func() (string, error) { return s, nil }
}

func escapeXML(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
