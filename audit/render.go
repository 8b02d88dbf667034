package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/zintix-labs/prnglab/config"
	"github.com/zintix-labs/prnglab/errs"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

var lang language.Tag = language.English

// Render 定義報告輸出行為
type Render interface {
	Write(w io.Writer, r *Report) error
}

// 輸出格式
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// RenderFor 依格式名稱取得 Render。
func RenderFor(format string) (Render, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return &TextRender{}, nil
	case FormatJSON:
		return &JSONRender{}, nil
	case FormatYAML, "yml":
		return &YAMLRender{}, nil
	}
	return nil, errs.InvalidArgumentf("unknown report format %q", format)
}

// Json渲染
type JSONRender struct{}

func (jr *JSONRender) Write(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// YAML渲染
type YAMLRender struct{}

func (yr *YAMLRender) Write(w io.Writer, r *Report) error {
	return forceReadableList(w, r)
}

// 文字表格渲染
type TextRender struct{}

func (tr *TextRender) Write(w io.Writer, r *Report) error {
	p := message.NewPrinter(lang)
	keys := make([]string, 0, len(r.Checks)+4)
	msg := make(map[string]string, len(r.Checks)+4)

	add := func(k, v string) {
		keys = append(keys, k)
		msg[k] = v
	}
	add("Run ID", r.RunID)
	add("Seed", fmt.Sprintf("%d", r.Seed))
	add("Samples x Trials", p.Sprintf("%d x %d", r.Samples, r.Trials))
	for i, c := range r.Checks {
		add(fmt.Sprintf("%02d %s", i+1, c.Label), fmtCheck(p, c))
	}
	verdict := "OK"
	if !r.OK {
		verdict = "FAILED"
	}
	add("Result", p.Sprintf("%s (%d passed, %d failed, %s)", verdict, r.Passed, r.Failed, r.Elapsed))

	_, err := io.WriteString(w, fmtTable(r.Suite, keys, msg))
	return err
}

func fmtCheck(p *message.Printer, c CheckReport) string {
	mark := "ok"
	if !c.OK {
		mark = "FAIL"
	}
	if len(c.Results) == 0 {
		return mark
	}
	res := c.Results[len(c.Results)-1]
	op := "<="
	switch c.Test {
	case config.TestChi2:
		op = "<"
	case config.TestEntropy:
		op = ">="
	}
	return p.Sprintf("%-4s %d/%d pass, expect %s, last %.4f %s %.4f", mark, c.Passes, c.Trials, c.Expect, res.Statistic, op, res.Threshold)
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)

	left := max((totalInner-titleW)/2, 0)
	right := max(totalInner-titleW-left, 0)

	var sb strings.Builder
	sb.WriteString(top)
	sb.WriteString(p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right)))
	sb.WriteString(divider)
	for _, k := range keys {
		sb.WriteString(p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k]))))
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}

// YAML 內層方法
func forceReadableList[T any](w io.Writer, t *T) error {
	var node yaml.Node
	if err := node.Encode(t); err != nil {
		return err
	}
	styleReadableSequences(&node)

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(&node)
}

// styleReadableSequences 只把「元素全為純量」的 sequence 改成 flow style: [a, b, c]；
// 元素含 mapping 或 sequence 的維持 block（展開）。
func styleReadableSequences(n *yaml.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case yaml.DocumentNode, yaml.MappingNode:
		for _, c := range n.Content {
			styleReadableSequences(c)
		}
	case yaml.SequenceNode:
		leaf := true
		for _, c := range n.Content {
			if c != nil && c.Kind != yaml.ScalarNode {
				leaf = false
			}
			styleReadableSequences(c)
		}
		if leaf {
			n.Style = yaml.FlowStyle
		}
	}
}
