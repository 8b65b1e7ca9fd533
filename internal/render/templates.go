package render

const greetingTmpl = `👋 **Hey there!** I'm the Cosmic AI Assistant on {{.Owner.Name}}'s portfolio.

I know everything about:
• 📊 **{{.Counts.DataAnalytics}} Data Analytics** projects
• 🤖 **{{.Counts.ML}} Machine Learning** projects
• 🧠 **{{.Counts.DeepLearning}} Deep Learning** projects
• 🐍 **{{.Counts.PythonOOP}} Python/OOP** applications

What would you like to explore?`

const aboutTmpl = `👨‍💻 **About {{.Owner.Name}}**

{{.Owner.About}}

**Current Focus:**
• Data Analytics & Visualization
• Machine Learning Engineering
• Deep Learning Research
• Enterprise Python Development

🔗 **Links:**
• GitHub: {{.Owner.GitHub}}
• LinkedIn: {{.Owner.LinkedIn}}`

const experienceTmpl = `💼 **Professional Experience**

**{{.Experience.Role}}** @ {{.Experience.Company}}
📅 {{.Experience.Duration}}

{{.Experience.Description}}

**Key Dashboards Developed:**
{{range .Experience.Projects}}• {{.}}
{{end}}
This internship focused on building data-driven dashboards and was recognized for analytical excellence!`

const skillsTmpl = `💼 **{{.FirstName}}'s Core Skills**

{{range .Skills}}• **{{.Name}}**: {{.Desc}}
{{end}}
{{if .MoreSkills}}...and more including {{join " & " .MoreSkills}}!

{{end}}Want to see projects using these skills? Just ask!`

const contactTmpl = `📬 **Contact {{.FirstName}}**

📧 **Email:** {{.Owner.Email}}

🔗 **Social Links:**
• LinkedIn: {{.Owner.LinkedIn}}
• GitHub: {{.Owner.GitHub}}
• Twitter/X: {{.Owner.Twitter}}

You can also use the **Contact Form** on the main page. {{.FirstName}} typically responds within 24 hours!`

const overviewTmpl = `🚀 **{{.FirstName}}'s Complete Portfolio**

📊 **Data Analytics ({{.Counts.DataAnalytics}} projects)**
Dashboards, SQL analyses, visualization

🤖 **Machine Learning ({{.Counts.ML}} projects)**
Supervised & Unsupervised learning

🧠 **Deep Learning ({{.Counts.DeepLearning}} projects)**
ANNs, CNNs, LSTM/RNNs

🐍 **Python/OOP ({{.Counts.PythonOOP}} projects)**
Enterprise applications & games
{{if .Projects}}
**Featured Spotlight Projects:**
{{range .Projects}}• {{.Name}} ({{categoryTitle .Category}})
{{end}}{{end}}
Which category interests you?`

const dataAnalyticsTmpl = `📊 **Data Analytics Projects**

{{range .Projects}}**{{.Name}}**
{{truncate 100 .Description}}
🛠️ {{join ", " .Tech}}

{{end}}{{if .More}}...and {{.More}} more projects! {{end}}Ask about any specific one for details.`

const mlTmpl = `🤖 **Machine Learning Projects**

**Supervised Learning ({{.SupervisedTotal}} projects):**
{{range .Supervised}}• **{{.Name}}** - {{.Stats}}
{{end}}
**Unsupervised Learning:**
{{range .Unsupervised}}• **{{.Name}}** - {{subKind .Kind}}
{{end}}
Ask about any specific project for more details!`

const deepLearningTmpl = `🧠 **Deep Learning Projects**

{{range .Projects}}**{{.Name}}** ({{.Kind}})
{{truncate 120 .Description}}
📊 {{.Stats}}
{{if .Links.LiveDemo}}🔗 Live App: {{.Links.LiveDemo}}
{{end}}
{{else}}New deep learning experiments are on the way!{{end}}`

const pythonTmpl = `🐍 **Python & OOP Projects**

{{with .Project}}⭐ **FLAGSHIP: {{.Name}}**
{{.Description}}
{{if .Links.LiveDemo}}🔗 Live Demo: {{.Links.LiveDemo}}
{{end}}
{{end}}**Other Projects:**
{{range .Projects}}• **{{.Name}}** - {{truncate 60 .Description}}
{{end}}`

const projectTmpl = `{{.Featured.Icon}} **{{.Project.Name}}**

{{.Project.Description}}
{{if .Project.Stats}}
**Stats:** {{.Project.Stats}}{{end}}
**Tech:** {{join " • " .Project.Tech}}
{{if .Project.Features}}
**Key Features:**
{{range .Project.Features}}• {{.}}
{{end}}{{end}}
{{if .Project.Links.LiveDemo}}🔗 Live Demo: {{.Project.Links.LiveDemo}}
{{end}}💻 GitHub: {{.Project.Links.Repo}}`

const notFoundTmpl = `🔍 I couldn't find details for "{{.Featured.Name}}" right now. Try asking for a category such as "deep learning" or "python projects" instead.`

const topicTmpl = `{{.Topic.Title}}

{{range .Projects}}**{{.Name}}**
{{truncate 100 .Description}}
{{if .Links.LiveDemo}}🔗 Live App: {{.Links.LiveDemo}}
{{end}}
{{else}}No projects in this area yet, but new ones ship often!{{end}}`

const tipTmpl = `💡 **Learning Tip from {{.FirstName}}:**

"{{.Tip}}"

Want another tip? Just ask!`

const helpTmpl = `🆘 **How I Can Help**

I'm your guide to {{.Owner.Name}}'s portfolio! Try asking:

**About Projects:**
• "Show me ML projects"
• "Tell me about YouTube Studio"
• "What Deep Learning projects are there?"

**About {{.FirstName}}:**
• "What are {{.FirstName}}'s skills?"
• "Tell me about the work experience"
• "How can I contact {{.FirstName}}?"

**Other:**
• "Give me a learning tip"
• "Show me all projects"

Or just use the quick buttons below! 👇`

const thanksTmpl = `🙏 **You're welcome!** Happy to help you explore {{.FirstName}}'s portfolio.

Is there anything else you'd like to know? Maybe:
• Another project category?
• Specific technologies used?
• How to get in touch?`

const fallbackTmpl = `🤔 I'm not sure I understood that fully, but I'm here to help!

Try asking about projects, skills, experience or contact details.`

// Welcome messages, keyed by page tag.

const welcomeIntro = `👋 **Hey there! I'm the Cosmic AI Assistant** for {{.Owner.Name}}'s portfolio.

`

const welcomeHomeTmpl = welcomeIntro + `I can help you explore:
• 📊 **Data Analytics** - Dashboards & SQL analyses
• 🤖 **Machine Learning** - {{.Counts.ML}} ML projects
• 🧠 **Deep Learning** - ANNs, CNNs, LSTMs
• 🐍 **Python/OOP** - Enterprise applications
• 💼 **Experience & Skills**
• 📧 **Contact Information**

Just ask or use the quick buttons below!`

const welcomeDataAnalyticsTmpl = welcomeIntro + `📊 You're exploring the **Data Analytics** projects! I can tell you about any of the dashboards, SQL analyses, or visualization projects here.

Try asking about "Marketing Dashboard" or "Olympic Analytics"!`

const welcomeMLTmpl = welcomeIntro + `🤖 Welcome to the **Machine Learning Lab**! I know all about the supervised and unsupervised projects here.

Ask me about "SmartHarvest", "Geo-Pulse", or any ML project!`

const welcomePythonTmpl = welcomeIntro + `🐍 You're in the **Python & OOP** section! These are enterprise-grade applications built with Python.

Ask about the "YouTube Studio Automation" flagship project or any backend system!`

const welcomeDeepLearningTmpl = welcomeIntro + `🧠 Welcome to the **Deep Learning Lab**! Here you'll find ANNs, CNNs, and LSTM projects.

Ask about "ASL Digits Recognizer" or "WeatherLens AI"!`
