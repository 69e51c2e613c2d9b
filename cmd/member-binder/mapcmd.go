package main

import (
	"fmt"
	"io"
	"reflect"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"member-binder/access"
	"member-binder/binder"
	"member-binder/flags"
	"member-binder/internal/profile"
	"member-binder/mapper"
	"member-binder/resolve"
)

// job is a profile with its objects constructed up front. Sample constructors
// touch package state, so only the mapping itself runs concurrently.
type job struct {
	profile profile.Profile
	spec    mapper.Spec
	source  any
	target  any
}

func runMap(args []string, stdout io.Writer) error {
	var profilePath, outPath string

	fs := pflag.NewFlagSet("map", pflag.ContinueOnError)
	fs.StringVarP(&profilePath, "profile", "p", "", "YAML map profile file")
	fs.StringVarP(&outPath, "out", "o", "", "report file, stdout when empty")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(profilePath) == "" {
		return fmt.Errorf("--profile is required")
	}

	file, err := profile.LoadFile(profilePath)
	if err != nil {
		return err
	}

	e, err := newEngine()
	if err != nil {
		return err
	}

	jobs, err := prepare(e, file.Profiles)
	if err != nil {
		return err
	}

	report := &profile.Report{Version: file.Version, Results: make([]profile.Result, len(jobs))}

	var g errgroup.Group

	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, j := range jobs {
		g.Go(func() error {
			report.Results[i] = execute(e, j)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if outPath != "" {
		if err := profile.WriteReport(report, outPath); err != nil {
			return err
		}

		fmt.Fprintf(stdout, "wrote %d results to %s\n", len(report.Results), outPath)
	} else {
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}

		fmt.Fprint(stdout, string(data))
	}

	if report.Failed() {
		return fmt.Errorf("one or more profiles failed")
	}

	return nil
}

func prepare(e *binder.Engine, profiles []profile.Profile) ([]job, error) {
	jobs := make([]job, 0, len(profiles))

	for _, p := range profiles {
		spec, err := p.Spec()
		if err != nil {
			return nil, err
		}

		src, err := lookupSample(p.Source)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", p.Name, err)
		}

		dst, err := lookupSample(p.Target)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", p.Name, err)
		}

		target, err := e.CreateInstance(dst.typ, flags.Default)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", p.Name, err)
		}

		jobs = append(jobs, job{profile: p, spec: spec, source: src.new(), target: target})
	}

	return jobs, nil
}

// execute maps one job and reads back the readable target members.
func execute(e *binder.Engine, j job) profile.Result {
	res := profile.Result{Profile: j.profile.Name, Spec: j.spec.String()}

	if _, err := e.Map(j.source, j.target, j.spec); err != nil {
		res.Error = err.Error()
		return res
	}

	fl := j.spec.TargetFlags
	if fl == flags.None {
		fl = flags.InstanceAnyVisibility
	}

	t := reflect.TypeOf(j.target)

	res.Values = make(map[string]any)
	for _, d := range e.Resolver().Members(t, j.spec.Target, fl) {
		if !d.CanGet() {
			continue
		}

		a, err := e.Bind(resolve.Query{Type: t, Kind: d.Kind, Name: d.Name, Flags: fl})
		if err != nil {
			res.Error = err.Error()
			return res
		}

		v, err := access.Get(a, j.target)
		if err != nil {
			res.Error = err.Error()
			return res
		}

		res.Values[d.Name] = v
	}

	return res
}
