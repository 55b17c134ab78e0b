// Package main provides the entry point for the Silsila Idreesia portal.
// It initializes and runs a web server using the Fiber framework that serves
// the administrative REST API (zones, mehfil directories, karkuns, ehads,
// tabarukats, mehfil reports and taleemat) together with a small public
// bilingual website. The application uses gorm for data persistence and
// role-based permissions to gate every administrative operation.
package main
