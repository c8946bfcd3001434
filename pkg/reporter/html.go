package reporter

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

const htmlTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Hardware Cost Comparison - {{.Specification.CPUCores}} vCPU / {{.Specification.MemoryGB}} GB</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background: #f5f7fa;
            color: #333;
            padding: 20px;
            line-height: 1.6;
        }
        .container {
            max-width: 1100px;
            margin: 0 auto;
            background: white;
            border-radius: 8px;
            box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);
            overflow: hidden;
        }
        .header {
            background: linear-gradient(135deg, #334155 0%, #0f172a 100%);
            color: white;
            padding: 40px;
        }
        .header h1 {
            font-size: 2.2em;
            margin-bottom: 10px;
        }
        .header .meta {
            opacity: 0.9;
        }
        .cards {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(260px, 1fr));
            gap: 20px;
            padding: 30px 40px;
        }
        .card {
            border-radius: 10px;
            padding: 24px;
            border-top: 4px solid #999;
            box-shadow: 0 1px 4px rgba(0, 0, 0, 0.08);
        }
        .card.azure { border-top-color: #0078d4; }
        .card.aws { border-top-color: #ff9900; }
        .card.on-prem { border-top-color: #16a34a; }
        .card h3 {
            font-size: 1em;
            text-transform: uppercase;
            letter-spacing: 0.5px;
            color: #555;
        }
        .card .value {
            font-size: 2em;
            font-weight: 700;
            font-family: ui-monospace, monospace;
        }
        .card .detail {
            font-size: 0.9em;
            color: #666;
        }
        .section {
            padding: 0 40px 30px;
        }
        .section h2 {
            font-size: 1.4em;
            margin-bottom: 15px;
        }
        table {
            width: 100%;
            border-collapse: collapse;
        }
        th, td {
            padding: 10px;
            border-bottom: 1px solid #e5e7eb;
        }
        th {
            text-align: left;
            background: #f8f9fa;
        }
        td.num, th.num {
            text-align: right;
            font-family: ui-monospace, monospace;
        }
        tr.best td {
            font-weight: 700;
        }
        .best-badge {
            color: #16a34a;
            font-weight: 700;
        }
        .notes {
            font-size: 0.85em;
            color: #666;
            padding: 20px 40px 30px;
            border-top: 1px solid #e5e7eb;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Hardware Cost Comparison</h1>
            <div class="meta">
                <p><strong>Specification:</strong> {{.Specification.CPUCores}} vCPU | {{.Specification.MemoryGB}} GB RAM | {{.Specification.StorageGB}} GB storage</p>
                <p><strong>Generated:</strong> {{.GeneratedAt.Format "January 2, 2006 15:04:05 MST"}} | <strong>Report:</strong> {{.ID}}</p>
            </div>
        </div>

        <div class="cards">
            <div class="card azure">
                <h3>{{.Estimates.Azure.Provider}}</h3>
                <div class="value">{{money .Estimates.Azure.TotalCost}}</div>
                <div class="detail">{{lower .HorizonLabel}} total | {{money .Estimates.Azure.MonthlyRate}}/month</div>
                <div class="detail">{{.Estimates.Azure.InstanceTier}}</div>
            </div>
            <div class="card aws">
                <h3>{{.Estimates.AWS.Provider}}</h3>
                <div class="value">{{money .Estimates.AWS.TotalCost}}</div>
                <div class="detail">{{lower .HorizonLabel}} total | {{money .Estimates.AWS.MonthlyRate}}/month</div>
                <div class="detail">{{.Estimates.AWS.InstanceTier}}</div>
            </div>
            <div class="card on-prem">
                <h3>On-Premises</h3>
                <div class="value">{{money .Estimates.OnPrem.TotalCost}}</div>
                <div class="detail">Hardware {{money .Estimates.OnPrem.HardwareCost}} | Power &amp; cooling {{money .Estimates.OnPrem.PowerCost}}</div>
                <div class="detail">{{.Estimates.OnPrem.Description}}</div>
            </div>
        </div>

        <div class="section">
            <h2>Cost Breakdown Comparison</h2>
            <table>
                <thead>
                    <tr>
                        <th>Platform</th>
                        <th class="num">Monthly Cost</th>
                        <th class="num">{{.HorizonLabel}} Total</th>
                        <th class="num">vs Cheapest</th>
                    </tr>
                </thead>
                <tbody>
                    {{range .Comparison.Rows}}
                    <tr class="{{if .Best}}best{{end}} {{.Label | lower}}">
                        <td>{{.Label}}</td>
                        <td class="num">{{money .MonthlyCost}}</td>
                        <td class="num">{{money .TotalCost}}</td>
                        <td class="num">{{if .Best}}<span class="best-badge">Best</span>{{else}}{{delta .}}{{end}}</td>
                    </tr>
                    {{end}}
                </tbody>
            </table>
        </div>

        <div class="notes">
            {{range .Notes}}
            <p>* {{.}}</p>
            {{end}}
        </div>
    </div>
</body>
</html>
`

// GenerateHTML creates an HTML report
func GenerateHTML(report *Report, writer io.Writer) error {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"lower": func(s interface{}) string {
			return strings.ToLower(fmt.Sprintf("%v", s))
		},
		"money": money,
		"delta": delta,
	}).Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	if err := tmpl.Execute(writer, report); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return nil
}
