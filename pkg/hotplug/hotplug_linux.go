//go:build linux

package hotplug

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// readTimeout bounds how long the reader takes to notice Stop.
const readTimeout = 100 * time.Millisecond

func (w *Watcher) startNetlink() error {
	w.logger.Info("[cpu-hotplug] Starting Netlink listener")

	// Kernel object uevents, the same source udev listens to.
	fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_RAW|unix.SOCK_CLOEXEC, unix.NETLINK_KOBJECT_UEVENT)
	if err != nil {
		return fmt.Errorf("failed to create netlink socket: %w", err)
	}

	// Group 1 is the kernel uevent multicast group; Pid 0 lets the kernel
	// assign the port ID.
	addr := &unix.SockaddrNetlink{Family: unix.AF_NETLINK, Groups: 1, Pid: 0}
	if err := unix.Bind(fd, addr); err != nil {
		_ = unix.Close(fd)
		return fmt.Errorf("failed to bind netlink socket: %w", err)
	}

	// recvfrom(2) is not woken up by closing the socket, so the reader
	// polls for the stop signal between timeouts.
	tv := unix.NsecToTimeval(readTimeout.Nanoseconds())
	if err := unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
		_ = unix.Close(fd)
		return fmt.Errorf("failed to set netlink socket timeout: %w", err)
	}

	w.netlinkFD = fd
	done := make(chan struct{})
	w.readerDone = done
	r := w.reactor

	go func() {
		defer close(done)
		buf := make([]byte, 8192)
		for {
			n, _, err := unix.Recvfrom(fd, buf, 0)
			if err != nil {
				if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
					select {
					case <-r.stopChan:
						return
					default:
						continue
					}
				}
				w.logger.Debug("[cpu-hotplug] Netlink socket read error", "error", err)
				return
			}
			if evt, ok := parseUevent(buf[:n]); ok {
				r.ingest(evt)
			}
		}
	}()

	return nil
}

func (w *Watcher) stopNetlink() error {
	if w.readerDone == nil {
		return nil
	}
	w.logger.Info("[cpu-hotplug] Stopping Netlink listener")
	// The fd is only closed once the reader is gone, so the reader never
	// sees a descriptor number that got reused.
	<-w.readerDone
	w.readerDone = nil
	err := unix.Close(w.netlinkFD)
	w.netlinkFD = -1
	return err
}
