// Package charts renders light curves and gauges for the console and the archive.
package charts

import (
	"encoding/json"
	"fmt"
)

// echartsCDN is the script tag the snippets rely on
const echartsCDN = `<script src="https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"></script>`

// ChartSnippet represents an embeddable ECharts chart fragment.
// Div contains a single root <div id="..." style="..."></div>
// Script contains the <script>...</script> block that initializes the chart in that div.
// HTML contains the complete snippet with div + script combined for template substitution.
type ChartSnippet struct {
	ID     string
	Title  string
	Div    string
	Script string
	HTML   string
}

// newSnippet wraps a marshalled option into div, script and a titled container
func newSnippet(id, title, height, container string, option interface{}) (ChartSnippet, error) {
	optJSON, err := json.Marshal(option)
	if err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to marshal %s option: %w", id, err)
	}

	div := fmt.Sprintf("<div id=\"%s\" style=\"width:100%%;height:%s;\"></div>", id, height)
	script := fmt.Sprintf(`<script>(function(){var el=document.getElementById('%s');if(!el)return;var c=echarts.init(el);var option=%s;c.setOption(option);window.addEventListener('resize',function(){c.resize();});})();</script>`, id, string(optJSON))

	completeHTML := fmt.Sprintf(`%s
<div class="%s">
	<h3>%s</h3>
	%s
</div>
%s`, echartsCDN, container, title, div, script)

	return ChartSnippet{ID: id, Title: title, Div: div, Script: script, HTML: completeHTML}, nil
}
