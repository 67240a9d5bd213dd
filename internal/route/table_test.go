package route_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.yaml.in/yaml/v3"

	"github.com/angeloszaimis/spandx/internal/route"
)

type routesDoc struct {
	Routes route.Table `yaml:"routes"`
}

func decode(doc string) (route.Table, error) {
	var d routesDoc
	err := yaml.Unmarshal([]byte(doc), &d)
	return d.Routes, err
}

var _ = Describe("Table", func() {
	Describe("NewTable", func() {
		It("should keep declaration order", func() {
			t := route.NewTable(
				route.Disk("/b", "./b"),
				route.Web("/a", "example.com", ""),
				route.Disk("/c", "./c"),
			)

			entries := t.Entries()
			Expect(entries).To(HaveLen(3))
			Expect(entries[0].Prefix).To(Equal("/b"))
			Expect(entries[1].Prefix).To(Equal("/a"))
			Expect(entries[2].Prefix).To(Equal("/c"))
		})

		It("should replace a repeated prefix in place", func() {
			t := route.NewTable(
				route.Disk("/a", "./one"),
				route.Disk("/b", "./b"),
				route.Disk("/a", "./two"),
			)

			Expect(t.Len()).To(Equal(2))
			Expect(t.Entries()[0].Target).To(Equal(route.DiskRoute("./two")))
		})

		It("should be present even when empty", func() {
			Expect(route.NewTable().Present()).To(BeTrue())
			Expect(route.Table{}.Present()).To(BeFalse())
		})
	})

	Describe("Set", func() {
		It("should not mutate copies that share entries", func() {
			original := route.NewTable(route.Disk("/a", "./a"))
			clone := original
			clone.Set("/a", route.DiskRoute("./changed"))
			clone.Set("/b", route.DiskRoute("./b"))

			target, ok := original.Get("/a")
			Expect(ok).To(BeTrue())
			Expect(target).To(Equal(route.DiskRoute("./a")))
			Expect(original.Len()).To(Equal(1))
		})
	})

	Describe("UnmarshalYAML", func() {
		It("should classify mappings as web routes and strings as disk routes", func() {
			t, err := decode(`
routes:
  /api:
    host: example.com
    watch: ./src
  /static: ./public
  /home: ~/site
`)
			Expect(err).NotTo(HaveOccurred())

			entries := t.Entries()
			Expect(entries).To(HaveLen(3))
			Expect(entries[0]).To(Equal(route.Web("/api", "example.com", "./src")))
			Expect(entries[1]).To(Equal(route.Disk("/static", "./public")))
			Expect(entries[2]).To(Equal(route.Disk("/home", "~/site")))
		})

		It("should keep keys case sensitive and in file order", func() {
			t, err := decode(`
routes:
  /Zeta: ./z
  /alpha: ./a
  /Beta.v2: ./b
`)
			Expect(err).NotTo(HaveOccurred())

			var prefixes []string
			for _, e := range t.Entries() {
				prefixes = append(prefixes, e.Prefix)
			}
			Expect(prefixes).To(Equal([]string{"/Zeta", "/alpha", "/Beta.v2"}))
		})

		It("should decode a web route without host", func() {
			t, err := decode(`
routes:
  /broken:
    watch: ./local
`)
			Expect(err).NotTo(HaveOccurred())

			target, ok := t.Get("/broken")
			Expect(ok).To(BeTrue())
			Expect(target.Kind()).To(Equal(route.KindWeb))
			Expect(target.(route.WebRoute).HasHost()).To(BeFalse())
			Expect(target.(route.WebRoute).HasWatch()).To(BeTrue())
		})

		It("should treat sequences as web routes", func() {
			t, err := decode(`
routes:
  /list: [a, b]
`)
			Expect(err).NotTo(HaveOccurred())

			target, _ := t.Get("/list")
			Expect(target).To(Equal(route.WebRoute{}))
		})

		It("should accept JSON documents", func() {
			t, err := decode(`{"routes": {"/api": {"host": "example.com"}, "/": "./dist"}}`)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Entries()).To(Equal([]route.Entry{
				route.Web("/api", "example.com", ""),
				route.Disk("/", "./dist"),
			}))
		})

		It("should leave the table absent when routes is missing or null", func() {
			t, err := decode(`other: 1`)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Present()).To(BeFalse())

			t, err = decode(`routes:`)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Present()).To(BeFalse())
		})

		It("should keep an explicitly empty table", func() {
			t, err := decode(`routes: {}`)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Present()).To(BeTrue())
			Expect(t.Len()).To(Equal(0))
		})

		It("should reject a non-mapping routes section", func() {
			_, err := decode(`routes: ./public`)
			Expect(err).To(MatchError(route.ErrInvalidTable))
		})
	})

	Describe("UnmarshalJSON", func() {
		It("should keep key order and classify values", func() {
			var doc struct {
				Routes route.Table `json:"routes"`
			}
			err := json.Unmarshal([]byte(`{
	"routes": {
		"/z": "./z",
		"/api": {"host": "example.com", "watch": "./src"},
		"/list": [],
		"/a": "~/a"
	}
}`), &doc)
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Routes.Entries()).To(Equal([]route.Entry{
				route.Disk("/z", "./z"),
				route.Web("/api", "example.com", "./src"),
				{Prefix: "/list", Target: route.WebRoute{}},
				route.Disk("/a", "~/a"),
			}))
		})

		It("should treat null as an absent table", func() {
			var t route.Table
			Expect(json.Unmarshal([]byte(`null`), &t)).To(Succeed())
			Expect(t.Present()).To(BeFalse())
		})

		It("should reject arrays", func() {
			var t route.Table
			Expect(json.Unmarshal([]byte(`["/a"]`), &t)).To(MatchError(route.ErrInvalidTable))
		})
	})

	Describe("MarshalJSON", func() {
		It("should encode entries in declaration order", func() {
			t := route.NewTable(
				route.Disk("/z", "./z"),
				route.Web("/a", "example.com", ""),
			)

			out, err := json.Marshal(t)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(Equal(`{"/z":"./z","/a":{"host":"example.com"}}`))
		})

		It("should encode entries as pairs", func() {
			out, err := json.Marshal(route.Disk("/static", "./public"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(Equal(`["/static","./public"]`))
		})
	})
})

var _ = Describe("Kind", func() {
	It("should name each variant", func() {
		Expect(route.DiskRoute("x").Kind().String()).To(Equal("disk"))
		Expect(route.WebRoute{}.Kind().String()).To(Equal("web"))
		Expect(route.Kind(9).String()).To(Equal("unknown"))
	})
})
