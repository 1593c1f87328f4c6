package spritepack

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var imageExtensions = map[string]struct{}{
	".bmp":  {},
	".gif":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".tif":  {},
	".tiff": {},
	".webp": {},
}

type spriteFile struct {
	path     string
	category string
}

// categoryFor derives the category for file from its position under base:
// top-level files stay uncategorized, anything deeper takes its first-level
// folder name minus any numeric ordering prefix.
func categoryFor(base, file string) (string, error) {
	rel, err := filepath.Rel(base, filepath.Dir(file))
	if err != nil {
		return "", err
	}
	if rel == "." {
		return "", nil
	}
	folder := strings.Split(rel, string(os.PathSeparator))[0]

	return Category(folder), nil
}

func (s *SpritePack) findImages(ctx context.Context, base string) (<-chan spriteFile, <-chan error, error) {
	out := make(chan spriteFile)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			if _, ok := imageExtensions[strings.ToLower(filepath.Ext(file))]; !ok {
				return nil
			}

			category, err := categoryFor(base, file)
			if err != nil {
				return err
			}

			select {
			case out <- spriteFile{path: file, category: category}:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (s *SpritePack) encodeFile(f spriteFile) error {
	name := strings.TrimSuffix(filepath.Base(f.path), filepath.Ext(f.path))

	var sum string
	if s.db != nil {
		var err error
		if sum, err = hashFile(f.path); err != nil {
			return err
		}

		data, err := s.db.FindSpriteByHash(sum)
		if err != nil {
			return err
		}
		if data != "" {
			s.logger.Printf("\"%s\" unchanged, reusing cached encoding\n", f.path)
			s.coll.Add(name, data, f.category)
			return nil
		}
	}

	fp, err := os.Open(f.path)
	if err != nil {
		return err
	}

	m, _, err := image.Decode(fp)
	fp.Close()
	if err != nil {
		return err
	}

	data, err := s.encoder.Encode(m)
	if err != nil {
		return err
	}

	s.coll.Add(name, data, f.category)

	if s.db != nil {
		s.pending = append(s.pending, cachedSprite{hash: sum, data: data})
	}

	return nil
}

func (s *SpritePack) encodeWorker(ctx context.Context, in <-chan spriteFile) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for f := range in {
			if err := s.encodeFile(f); err != nil {
				errc <- fmt.Errorf("%s: %w", f.path, err)
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// EncodeTree walks the directory tree rooted at path and encodes every
// image it finds, in lexical order. Top-level images land in the implicit
// root category; images below a first-level folder are grouped under the
// category derived from that folder's name. Any read or decode failure
// aborts the whole run and nothing is written to the encode cache.
func (s *SpritePack) EncodeTree(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := s.findImages(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	// A single worker: palette index assignment must be serialized, and
	// one consumer additionally keeps first-seen palette order
	// reproducible between runs, which the encode cache relies on.
	errc, err = s.encodeWorker(ctx, files)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	if err := waitForPipeline(errcList...); err != nil {
		return err
	}

	if s.db != nil {
		return s.db.save(s.palette.Colors(), s.pending)
	}

	return nil
}
