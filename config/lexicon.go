package config

// SkillTriggers maps a skill to the phrases that signal it in ticket text.
type SkillTriggers struct {
	Skill    string
	Triggers []string
}

// Lexicon is the fixed vocabulary used for skill extraction and security
// risk. Values returned by DefaultLexicon are fresh copies and safe to modify.
type Lexicon struct {
	Skills           []SkillTriggers
	SecurityKeywords []string
}

// SkillIndex returns the position of each skill in the lexicon.
func (l Lexicon) SkillIndex() map[string]int {
	idx := make(map[string]int, len(l.Skills))
	for i, s := range l.Skills {
		idx[s.Skill] = i
	}
	return idx
}

// DefaultLexicon returns the built-in lexicon.
func DefaultLexicon() Lexicon {
	skills := make([]SkillTriggers, len(skillLexicon))
	for i, s := range skillLexicon {
		skills[i] = SkillTriggers{
			Skill:    s.Skill,
			Triggers: append([]string(nil), s.Triggers...),
		}
	}
	return Lexicon{
		Skills:           skills,
		SecurityKeywords: append([]string(nil), securityKeywords...),
	}
}

var securityKeywords = []string{
	"breach", "attack", "phishing", "malware", "virus",
	"unauthorized", "suspicious", "security",
}

var skillLexicon = []SkillTriggers{
	{"Networking", []string{"network", "vpn", "connection", "connectivity", "lan", "wan"}},
	{"VPN_Troubleshooting", []string{"vpn", "tunnel", "remote", "connection dropping"}},
	{"Linux_Administration", []string{"linux", "ubuntu", "debian", "centos", "bash", "shell"}},
	{"Cloud_AWS", []string{"aws", "amazon", "ec2", "s3", "lambda"}},
	{"Cloud_Azure", []string{"azure", "microsoft cloud", "app service"}},
	{"Hardware_Diagnostics", []string{"hardware", "laptop", "desktop", "pc", "computer", "fan", "battery"}},
	{"Windows_Server_2022", []string{"windows server", "server 2022", "windows 2022"}},
	{"Active_Directory", []string{"active directory", "ad", "domain", "ldap", "group policy"}},
	{"Microsoft_365", []string{"microsoft 365", "m365", "office 365", "outlook", "teams", "sharepoint"}},
	{"Network_Security", []string{"firewall", "security", "breach", "attack", "vulnerability"}},
	{"Database_SQL", []string{"database", "sql", "query", "mysql", "postgresql", "mssql"}},
	{"SharePoint_Online", []string{"sharepoint", "document library", "site collection"}},
	{"PowerShell_Scripting", []string{"powershell", "ps1", "script"}},
	{"Endpoint_Security", []string{"endpoint", "antivirus", "malware", "edr"}},
	{"DevOps_CI_CD", []string{"devops", "ci/cd", "jenkins", "pipeline", "deployment"}},
	{"Kubernetes_Docker", []string{"kubernetes", "k8s", "docker", "container", "pod"}},
	{"Voice_VoIP", []string{"voip", "phone", "voice", "telephony", "sip"}},
	{"Printer_Troubleshooting", []string{"printer", "print", "printing"}},
	{"Mac_OS", []string{"mac", "macos", "osx", "apple", "macbook"}},
	{"SaaS_Integrations", []string{"saas", "integration", "api", "webhook", "sso", "saml"}},
	{"Phishing_Analysis", []string{"phishing", "spam", "suspicious email", "scam"}},
	{"SSL_Certificates", []string{"ssl", "tls", "certificate", "https", "encryption"}},
	{"DNS_Configuration", []string{"dns", "domain", "nameserver", "resolution"}},
	{"Endpoint_Management", []string{"endpoint", "mdm", "intune", "device management"}},
	{"Web_Server_Apache_Nginx", []string{"apache", "nginx", "web server", "http"}},
	{"Firewall_Configuration", []string{"firewall", "iptables", "pf", "acl", "rules"}},
	{"Identity_Management", []string{"identity", "iam", "okta", "auth0", "authentication"}},
	{"Laptop_Repair", []string{"laptop", "notebook", "screen", "keyboard", "touchpad"}},
	{"Network_Cabling", []string{"cable", "ethernet", "cat5", "cat6", "rj45"}},
	{"Switch_Configuration", []string{"switch", "vlan", "trunk", "spanning tree"}},
	{"Routing_Protocols", []string{"routing", "ospf", "bgp", "eigrp", "route"}},
	{"Cisco_IOS", []string{"cisco", "ios", "ccna", "router", "switch"}},
	{"Antivirus_Malware", []string{"antivirus", "malware", "virus", "trojan", "ransomware"}},
	{"Security_Audits", []string{"audit", "compliance", "assessment", "vulnerability scan"}},
	{"SIEM_Logging", []string{"siem", "log", "splunk", "elastic", "monitoring"}},
	{"ETL_Processes", []string{"etl", "extract", "transform", "load", "data pipeline"}},
	{"Data_Warehousing", []string{"warehouse", "data lake", "bigquery", "redshift"}},
	{"PowerBI_Tableau", []string{"powerbi", "tableau", "dashboard", "visualization"}},
	{"API_Troubleshooting", []string{"api", "rest", "graphql", "endpoint", "integration"}},
	{"Software_Licensing", []string{"license", "activation", "subscription", "seat"}},
	{"Virtualization_VMware", []string{"vmware", "virtual", "vm", "esxi", "vcenter"}},
	{"Python_Scripting", []string{"python", "py", "script", "automation"}},
}
