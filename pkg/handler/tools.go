package handler

import (
	"context"
	"encoding/json"

	"github.com/gomcpgo/mcp/pkg/protocol"
)

// ListTools provides a list of all available tools
func (h *StabilityImageHandler) ListTools(ctx context.Context) (*protocol.ListToolsResponse, error) {
	tools := []protocol.Tool{
		{
			Name:        "generate_image",
			Description: `Generate images from text prompts using Stability AI models. Ultra produces the highest quality, Core is fast and affordable, and the SD 3.5 family (large, large-turbo, medium) supports image-to-image with a strength knob.`,
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"prompt": {
						"type": "string",
						"description": "Text description of the image to generate. Be descriptive for best results."
					},
					"model": {
						"type": "string",
						"description": "Model to use: ultra (highest quality), core (fast, default), sd3.5-large, sd3.5-large-turbo, sd3.5-medium",
						"default": "core"
					},
					"negative_prompt": {
						"type": "string",
						"description": "What to avoid in the image"
					},
					"aspect_ratio": {
						"type": "string",
						"description": "Aspect ratio of the output. Ignored when image_path is set.",
						"enum": ["16:9", "1:1", "21:9", "2:3", "3:2", "4:5", "5:4", "9:16", "9:21"],
						"default": "1:1"
					},
					"style_preset": {
						"type": "string",
						"description": "Style preset to guide the generation, e.g. photographic, anime, digital-art, cinematic, pixel-art"
					},
					"output_format": {
						"type": "string",
						"description": "Output image format",
						"enum": ["png", "jpeg", "webp"],
						"default": "png"
					},
					"seed": {
						"type": "integer",
						"description": "Random seed for reproducible results (0 to 4294967294)"
					},
					"image_path": {
						"type": "string",
						"description": "Absolute path to an input image for image-to-image generation (SD 3.5 models only)"
					},
					"strength": {
						"type": "number",
						"description": "How much the input image influences the result (0-1). Required with image_path."
					},
					"filename": {
						"type": "string",
						"description": "Optional filename for the saved image"
					}
				},
				"required": ["prompt"]
			}`),
		},
		{
			Name:        "erase_object",
			Description: `Remove unwanted objects from an image. Uses the alpha channel of the image as the mask unless a separate mask image is given.`,
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"image_path": {
						"type": "string",
						"description": "Absolute path to the image to edit"
					},
					"mask_path": {
						"type": "string",
						"description": "Absolute path to a mask image. White pixels are erased, black pixels are kept."
					},
					"grow_mask": {
						"type": "integer",
						"description": "Grows the mask edges outward by this many pixels (0-100)"
					},
					"output_format": {
						"type": "string",
						"enum": ["png", "jpeg", "webp"],
						"default": "png"
					},
					"seed": {
						"type": "integer",
						"description": "Random seed for reproducible results"
					},
					"filename": {
						"type": "string",
						"description": "Optional filename for the saved image"
					}
				},
				"required": ["image_path"]
			}`),
		},
		{
			Name:        "inpaint_image",
			Description: `Fill in or replace a masked region of an image based on a text prompt.`,
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"image_path": {
						"type": "string",
						"description": "Absolute path to the image to edit"
					},
					"prompt": {
						"type": "string",
						"description": "What to generate in the masked region"
					},
					"negative_prompt": {
						"type": "string",
						"description": "What to avoid in the filled region"
					},
					"mask_path": {
						"type": "string",
						"description": "Absolute path to a mask image. Defaults to the image alpha channel."
					},
					"grow_mask": {
						"type": "integer",
						"description": "Grows the mask edges outward by this many pixels (0-100)"
					},
					"output_format": {
						"type": "string",
						"enum": ["png", "jpeg", "webp"],
						"default": "png"
					},
					"seed": {
						"type": "integer",
						"description": "Random seed for reproducible results"
					},
					"filename": {
						"type": "string",
						"description": "Optional filename for the saved image"
					}
				},
				"required": ["image_path", "prompt"]
			}`),
		},
		{
			Name:        "outpaint_image",
			Description: `Extend an image outward in any direction, filling the new space with generated content. At least one direction must be given.`,
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"image_path": {
						"type": "string",
						"description": "Absolute path to the image to extend"
					},
					"left": {
						"type": "integer",
						"description": "Pixels to add on the left (0-2000)"
					},
					"right": {
						"type": "integer",
						"description": "Pixels to add on the right (0-2000)"
					},
					"up": {
						"type": "integer",
						"description": "Pixels to add on top (0-2000)"
					},
					"down": {
						"type": "integer",
						"description": "Pixels to add on the bottom (0-2000)"
					},
					"prompt": {
						"type": "string",
						"description": "Optional description of what to generate in the new space"
					},
					"creativity": {
						"type": "number",
						"description": "How creative the outpainted content is (0-1)"
					},
					"output_format": {
						"type": "string",
						"enum": ["png", "jpeg", "webp"],
						"default": "png"
					},
					"seed": {
						"type": "integer",
						"description": "Random seed for reproducible results"
					},
					"filename": {
						"type": "string",
						"description": "Optional filename for the saved image"
					}
				},
				"required": ["image_path"]
			}`),
		},
		{
			Name:        "search_and_replace",
			Description: `Replace an object in an image by describing it. No mask needed - the object to replace is located from the search prompt.`,
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"image_path": {
						"type": "string",
						"description": "Absolute path to the image to edit"
					},
					"prompt": {
						"type": "string",
						"description": "What to replace the object with"
					},
					"search_prompt": {
						"type": "string",
						"description": "Short description of the object to replace"
					},
					"negative_prompt": {
						"type": "string",
						"description": "What to avoid in the replacement"
					},
					"grow_mask": {
						"type": "integer",
						"description": "Grows the detected region outward by this many pixels (0-100)"
					},
					"output_format": {
						"type": "string",
						"enum": ["png", "jpeg", "webp"],
						"default": "png"
					},
					"seed": {
						"type": "integer",
						"description": "Random seed for reproducible results"
					},
					"filename": {
						"type": "string",
						"description": "Optional filename for the saved image"
					}
				},
				"required": ["image_path", "prompt", "search_prompt"]
			}`),
		},
		{
			Name:        "search_and_recolor",
			Description: `Change the color of an object in an image by describing it. The object to recolor is located from the select prompt.`,
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"image_path": {
						"type": "string",
						"description": "Absolute path to the image to edit"
					},
					"prompt": {
						"type": "string",
						"description": "The new colors to apply, e.g. 'a red car'"
					},
					"select_prompt": {
						"type": "string",
						"description": "Short description of the object to recolor"
					},
					"negative_prompt": {
						"type": "string",
						"description": "What to avoid in the recolored region"
					},
					"grow_mask": {
						"type": "integer",
						"description": "Grows the detected region outward by this many pixels (0-100)"
					},
					"output_format": {
						"type": "string",
						"enum": ["png", "jpeg", "webp"],
						"default": "png"
					},
					"seed": {
						"type": "integer",
						"description": "Random seed for reproducible results"
					},
					"filename": {
						"type": "string",
						"description": "Optional filename for the saved image"
					}
				},
				"required": ["image_path", "prompt", "select_prompt"]
			}`),
		},
		{
			Name:        "remove_background",
			Description: `Remove the background from an image, leaving the foreground subject on a transparent background.`,
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"image_path": {
						"type": "string",
						"description": "Absolute path to the image to process"
					},
					"output_format": {
						"type": "string",
						"enum": ["png", "webp"],
						"default": "png"
					},
					"filename": {
						"type": "string",
						"description": "Optional filename for the saved image"
					}
				},
				"required": ["image_path"]
			}`),
		},
		{
			Name:        "replace_background_and_relight",
			Description: `Replace the background of an image and relight the subject to match. The new background is described with a text prompt.`,
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"image_path": {
						"type": "string",
						"description": "Absolute path to the subject image"
					},
					"background_prompt": {
						"type": "string",
						"description": "Description of the new background"
					},
					"foreground_prompt": {
						"type": "string",
						"description": "Optional description of the subject, to help preserve it"
					},
					"negative_prompt": {
						"type": "string",
						"description": "What to avoid in the new background"
					},
					"light_source_direction": {
						"type": "string",
						"description": "Direction the light comes from",
						"enum": ["above", "below", "left", "right"]
					},
					"light_source_strength": {
						"type": "number",
						"description": "Strength of the relighting (0-1)"
					},
					"output_format": {
						"type": "string",
						"enum": ["png", "jpeg", "webp"],
						"default": "png"
					},
					"seed": {
						"type": "integer",
						"description": "Random seed for reproducible results"
					},
					"filename": {
						"type": "string",
						"description": "Optional filename for the saved image"
					}
				},
				"required": ["image_path", "background_prompt"]
			}`),
		},
		{
			Name:        "upscale_image",
			Description: `Upscale an image to higher resolution. Fast is a quick 4x upscale, conservative preserves the original closely, and creative reimagines detail (takes longer, runs as a background job).`,
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"image_path": {
						"type": "string",
						"description": "Absolute path to the image to upscale"
					},
					"mode": {
						"type": "string",
						"description": "Upscaling mode: fast, conservative, or creative",
						"enum": ["fast", "conservative", "creative"],
						"default": "fast"
					},
					"prompt": {
						"type": "string",
						"description": "Description of the image. Required for conservative and creative modes."
					},
					"negative_prompt": {
						"type": "string",
						"description": "What to avoid (conservative and creative modes)"
					},
					"creativity": {
						"type": "number",
						"description": "How much new detail to invent. Conservative: 0.2-0.5, creative: up to 0.35."
					},
					"output_format": {
						"type": "string",
						"enum": ["png", "jpeg", "webp"],
						"default": "png"
					},
					"seed": {
						"type": "integer",
						"description": "Random seed for reproducible results"
					},
					"filename": {
						"type": "string",
						"description": "Optional filename for the saved image"
					}
				},
				"required": ["image_path"]
			}`),
		},
		{
			Name:        "control_sketch",
			Description: `Generate an image guided by a sketch or line drawing. The sketch controls the composition while the prompt controls the content.`,
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"image_path": {
						"type": "string",
						"description": "Absolute path to the sketch image"
					},
					"prompt": {
						"type": "string",
						"description": "What to generate"
					},
					"negative_prompt": {
						"type": "string",
						"description": "What to avoid in the image"
					},
					"control_strength": {
						"type": "number",
						"description": "How strongly the sketch constrains the result (0-1)"
					},
					"output_format": {
						"type": "string",
						"enum": ["png", "jpeg", "webp"],
						"default": "png"
					},
					"seed": {
						"type": "integer",
						"description": "Random seed for reproducible results"
					},
					"filename": {
						"type": "string",
						"description": "Optional filename for the saved image"
					}
				},
				"required": ["image_path", "prompt"]
			}`),
		},
		{
			Name:        "control_structure",
			Description: `Generate an image that keeps the structure of an input image. Useful for recreating a scene or rendering a 3D model in a new style.`,
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"image_path": {
						"type": "string",
						"description": "Absolute path to the structure reference image"
					},
					"prompt": {
						"type": "string",
						"description": "What to generate"
					},
					"negative_prompt": {
						"type": "string",
						"description": "What to avoid in the image"
					},
					"control_strength": {
						"type": "number",
						"description": "How strongly the structure constrains the result (0-1)"
					},
					"output_format": {
						"type": "string",
						"enum": ["png", "jpeg", "webp"],
						"default": "png"
					},
					"seed": {
						"type": "integer",
						"description": "Random seed for reproducible results"
					},
					"filename": {
						"type": "string",
						"description": "Optional filename for the saved image"
					}
				},
				"required": ["image_path", "prompt"]
			}`),
		},
		{
			Name:        "control_style",
			Description: `Generate an image in the visual style of a reference image. The prompt controls the content, the reference controls the style.`,
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"image_path": {
						"type": "string",
						"description": "Absolute path to the style reference image"
					},
					"prompt": {
						"type": "string",
						"description": "What to generate"
					},
					"negative_prompt": {
						"type": "string",
						"description": "What to avoid in the image"
					},
					"fidelity": {
						"type": "number",
						"description": "How closely the output matches the reference style (0-1)"
					},
					"output_format": {
						"type": "string",
						"enum": ["png", "jpeg", "webp"],
						"default": "png"
					},
					"seed": {
						"type": "integer",
						"description": "Random seed for reproducible results"
					},
					"filename": {
						"type": "string",
						"description": "Optional filename for the saved image"
					}
				},
				"required": ["image_path", "prompt"]
			}`),
		},
		{
			Name:        "control_style_transfer",
			Description: `Restyle an existing image to match the style of a second image. No prompt needed - content comes from the first image, style from the second.`,
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"image_path": {
						"type": "string",
						"description": "Absolute path to the content image to restyle"
					},
					"style_image_path": {
						"type": "string",
						"description": "Absolute path to the style reference image"
					},
					"prompt": {
						"type": "string",
						"description": "Optional extra guidance for the result"
					},
					"negative_prompt": {
						"type": "string",
						"description": "What to avoid in the image"
					},
					"style_strength": {
						"type": "number",
						"description": "How strongly the style is applied (0-1)"
					},
					"change_strength": {
						"type": "number",
						"description": "How much the content image may change (0-1)"
					},
					"output_format": {
						"type": "string",
						"enum": ["png", "jpeg", "webp"],
						"default": "png"
					},
					"seed": {
						"type": "integer",
						"description": "Random seed for reproducible results"
					},
					"filename": {
						"type": "string",
						"description": "Optional filename for the saved image"
					}
				},
				"required": ["image_path", "style_image_path"]
			}`),
		},
		{
			Name:        "generate_3d_model",
			Description: `Generate a textured 3D mesh (GLB) from a single image. stable-fast-3d is quick, stable-point-aware-3d handles hidden surfaces better and supports mesh simplification.`,
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"image_path": {
						"type": "string",
						"description": "Absolute path to the source image"
					},
					"model": {
						"type": "string",
						"description": "Model to use",
						"enum": ["stable-fast-3d", "stable-point-aware-3d"],
						"default": "stable-fast-3d"
					},
					"texture_resolution": {
						"type": "integer",
						"description": "Texture resolution in pixels",
						"enum": [512, 1024, 2048],
						"default": 1024
					},
					"foreground_ratio": {
						"type": "number",
						"description": "Padding around the subject. stable-fast-3d: 0.1-1, stable-point-aware-3d: 1-2."
					},
					"remesh": {
						"type": "string",
						"description": "Remeshing algorithm (stable-fast-3d only)",
						"enum": ["none", "quad", "triangle"]
					},
					"target_type": {
						"type": "string",
						"description": "Mesh simplification target (stable-point-aware-3d only)",
						"enum": ["none", "vertex", "face"]
					},
					"target_count": {
						"type": "integer",
						"description": "Target vertex or face count, 100-20000 (stable-point-aware-3d only)"
					},
					"guidance_scale": {
						"type": "integer",
						"description": "How closely the model follows the image, 1-10 (stable-point-aware-3d only)"
					},
					"filename": {
						"type": "string",
						"description": "Optional filename for the saved mesh"
					}
				},
				"required": ["image_path"]
			}`),
		},
		{
			Name:        "get_balance",
			Description: `Get the remaining credit balance of the Stability AI account.`,
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},
		{
			Name:        "list_images",
			Description: `List all generated images stored locally, with their IDs, operations and file paths.`,
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},
	}

	return &protocol.ListToolsResponse{Tools: tools}, nil
}
