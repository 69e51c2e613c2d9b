// Package profile loads map profiles from YAML and writes map reports.
//
// A profile file names pairs of sample types and how members are copied
// between them:
//
//	version: "1"
//	profiles:
//	  - name: visitor-to-person
//	    source: Visitor
//	    target: Person
//	    mode: fields-to-properties
//	    members: [Name, Age]
//	    source_flags: public,instance
//
// Mode defaults to "fields", flags default to every instance member, and a
// missing name is derived from the type pair.
package profile
