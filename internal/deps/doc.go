// Package deps checks that the external binaries findex shells out to are
// installed, and that configured support files such as the yt-dlp cookies
// jar exist. Versions are probed for status output and health checks.
package deps
