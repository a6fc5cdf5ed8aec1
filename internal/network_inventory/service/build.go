package service

import (
	"sort"
	"strings"

	"github.com/netroute-lab/routeview/internal/network_inventory/domain"
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// BuildRouterInfo groups model objects by router. Every named Config object
// is listed under its own name; related objects are attached to the router of
// each Config they are related to.
func BuildRouterInfo(models []domain.ModelObject, relations []domain.Relation) map[string][]domain.ModelObject {
	byID := make(map[string]domain.ModelObject, len(models))
	for _, m := range models {
		if m.ID != "" {
			byID[normalize(m.ID)] = m
		}
	}

	routers := map[string][]domain.ModelObject{}
	for _, m := range models {
		if m.ClassName == domain.ClassConfig && m.Name != "" {
			r := normalize(m.Name)
			routers[r] = append(routers[r], m)
		}
	}

	for _, rel := range relations {
		refKeys := make([]string, 0, len(rel.Refs))
		for k := range rel.Refs {
			refKeys = append(refKeys, k)
		}
		sort.Strings(refKeys)

		for _, key := range refKeys {
			objectID := rel.Refs[key]
			for _, k := range rel.Kanren {
				cfgID, ok := k[domain.ClassConfig]
				if !ok || cfgID == "" {
					continue
				}
				cfg, ok := byID[normalize(cfgID)]
				if !ok || cfg.Name == "" {
					continue
				}
				r := normalize(cfg.Name)
				if _, ok := routers[r]; !ok {
					routers[r] = []domain.ModelObject{}
				}
				if assoc, ok := byID[normalize(objectID)]; ok {
					routers[r] = append(routers[r], assoc)
				}
			}
		}
	}
	return routers
}

// BuildErrorTable aggregates check results into id -> failing fields.
func BuildErrorTable(entries []domain.ErrorEntry) domain.ErrorTable {
	table := domain.ErrorTable{}
	for _, e := range entries {
		ids := make([]string, 0, len(e.Instances))
		for id := range e.Instances {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			key := normalize(id)
			table[key] = append(table[key], e.Instances[id])
		}
	}
	return table
}

// Detail renders the drawer view of one router's objects, flagging fields
// listed in the error table.
func Detail(router string, objects []domain.ModelObject, errs domain.ErrorTable) domain.RouterDetail {
	d := domain.RouterDetail{Router: normalize(router), Sections: []domain.Section{}}
	sectionIdx := map[string]int{}

	for _, o := range objects {
		bad := map[string]bool{}
		for _, f := range errs[normalize(o.ID)] {
			bad[strings.ToLower(f)] = true
		}

		view := domain.ObjectView{ID: o.ID, Name: o.Name, Fields: []domain.Field{}}
		names := make([]string, 0, len(o.Attrs))
		for k := range o.Attrs {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			f := domain.Field{Name: k, Value: o.Attrs[k], Error: bad[strings.ToLower(k)]}
			view.Fields = append(view.Fields, f)
			if f.Error {
				view.Error = true
			}
		}

		i, ok := sectionIdx[o.ClassName]
		if !ok {
			i = len(d.Sections)
			sectionIdx[o.ClassName] = i
			d.Sections = append(d.Sections, domain.Section{ClassName: o.ClassName, Objects: []domain.ObjectView{}})
		}
		d.Sections[i].Objects = append(d.Sections[i].Objects, view)
		if view.Error {
			d.Sections[i].Error = true
			d.HasErrors = true
		}
	}
	return d
}
